package settings

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/eq-toolbox/eq-toolbox/internal/db/controller/option"
)

// Options reads stored values. Any value that is missing or unreadable
// yields the default given by the caller.
type Options struct {
	Store Store
}

func (o Options) load(name string, dst any) bool {
	if o.Store == nil {
		return false
	}

	raw, err := o.Store.Get(name)
	if err != nil {
		if !errors.Is(err, option.ErrOptionNotFound) {
			log.Warn().Err(err).Str("option", name).Msg("can't read option, using default")
		}

		return false
	}

	if err = json.Unmarshal(raw, dst); err != nil {
		log.Warn().Err(err).Str("option", name).Msg("can't decode option, using default")

		return false
	}

	return true
}

// Bool returns the boolean option name or def.
func (o Options) Bool(name string, def bool) bool {
	var v bool
	if !o.load(name, &v) {
		return def
	}

	return v
}

// String returns the string option name or def.
func (o Options) String(name, def string) string {
	var v string
	if !o.load(name, &v) {
		return def
	}

	return v
}
