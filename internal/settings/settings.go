// Package settings registers plugin options, renders their admin fields and
// reads and writes them through a key/value store.
package settings

import (
	"encoding/json"
	"errors"
	"io"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Kind is the value type of a setting.
type Kind int

// Known kinds.
const (
	String Kind = iota
	Boolean
)

// ErrUnknownSetting is returned when a name was never registered.
var ErrUnknownSetting = errors.New("setting is not registered")

// Store persists raw values. A missing value is reported with option.ErrOptionNotFound,
// option.Store implements it on top of the options table.
type Store interface {
	Get(name string) ([]byte, error)
	Set(name string, value []byte) error
}

// Sanitizer turns a submitted form value into the value that is stored.
type Sanitizer func(raw string) any

// Definition describes a registered setting.
type Definition struct {
	Kind     Kind
	Default  any
	Sanitize Sanitizer
}

// Setting is a registered option of a group.
type Setting struct {
	Group string
	Name  string
	Definition
}

// FieldRenderer writes the form control of a field.
type FieldRenderer func(w io.Writer) error

// Field is a form row on a settings page.
type Field struct {
	ID      string
	Title   string
	Page    string
	Section string
	Render  FieldRenderer
}

// Registry collects settings and fields. Registration normally happens once
// while handling admin_init, reads happen on every admin request.
type Registry struct {
	mu       sync.RWMutex
	store    Store
	settings []Setting
	fields   []Field
}

// NewRegistry returns an empty registry writing to store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Register adds name to group. Registering a name again replaces its definition.
func (r *Registry) Register(group, name string, def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if def.Sanitize == nil {
		def.Sanitize = defaultSanitizer(def.Kind)
	}

	s := Setting{Group: group, Name: name, Definition: def}

	for i := range r.settings {
		if r.settings[i].Name == name {
			r.settings[i] = s
			return
		}
	}

	r.settings = append(r.settings, s)
}

// AddField adds a form row. Fields keep their registration order.
func (r *Registry) AddField(f Field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.fields {
		if r.fields[i].ID == f.ID && r.fields[i].Page == f.Page {
			r.fields[i] = f
			return
		}
	}

	r.fields = append(r.fields, f)
}

// Fields returns the rows of page.
func (r *Registry) Fields(page string) []Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Field

	for _, f := range r.fields {
		if f.Page == page {
			out = append(out, f)
		}
	}

	return out
}

// Settings returns the settings of group.
func (r *Registry) Settings(group string) []Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Setting

	for _, s := range r.settings {
		if s.Group == group {
			out = append(out, s)
		}
	}

	return out
}

// Lookup returns the registered setting name.
func (r *Registry) Lookup(name string) (Setting, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.settings {
		if s.Name == name {
			return s, true
		}
	}

	return Setting{}, false
}

// Update sanitizes raw and stores it as the value of name.
func (r *Registry) Update(name, raw string) error {
	s, ok := r.Lookup(name)
	if !ok {
		return pkgerrors.Wrap(ErrUnknownSetting, name)
	}

	value, err := json.Marshal(s.Sanitize(raw))
	if err != nil {
		return pkgerrors.Wrapf(err, "encode setting %s", name)
	}

	if err = r.store.Set(name, value); err != nil {
		return pkgerrors.Wrapf(err, "store setting %s", name)
	}

	log.Debug().Str("setting", name).Msg("setting updated")

	return nil
}

// Save stores every setting of group from form. Settings absent from form are
// saved as the empty submission, an unchecked checkbox is never sent.
func (r *Registry) Save(group string, form map[string]string) error {
	for _, s := range r.Settings(group) {
		if err := r.Update(s.Name, form[s.Name]); err != nil {
			return err
		}
	}

	return nil
}

func defaultSanitizer(kind Kind) Sanitizer {
	if kind == Boolean {
		return SanitizeBool
	}

	return func(raw string) any { return raw }
}

// SanitizeBool coerces a submitted value to a boolean. Empty and "0" are false.
func SanitizeBool(raw string) any {
	return raw != "" && raw != "0"
}
