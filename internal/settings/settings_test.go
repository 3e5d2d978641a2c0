package settings

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/db/controller/option"
	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
)

func setupStore(t *testing.T) option.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Option{}))

	return option.Store{DB: db}
}

type failingStore struct{}

var errBroken = errors.New("broken store")

func (failingStore) Get(string) ([]byte, error) { return nil, errBroken }
func (failingStore) Set(string, []byte) error   { return errBroken }

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Store: setupStore(t)}

	assert.True(t, opts.Bool("eq_toolbox_enable_cta", true))
	assert.False(t, opts.Bool("eq_toolbox_enable_cta", false))
	assert.Equal(t, "", opts.String("eq_toolbox_cta", ""))
	assert.Equal(t, "fallback", opts.String("eq_toolbox_cta", "fallback"))

	assert.True(t, Options{}.Bool("x", true))
	assert.True(t, Options{Store: failingStore{}}.Bool("x", true))
}

func TestOptionsUndecodableValueUsesDefault(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.Set("eq_toolbox_enable_cta", []byte("not json")))

	assert.True(t, Options{Store: store}.Bool("eq_toolbox_enable_cta", true))
}

func TestRegistrySave(t *testing.T) {
	store := setupStore(t)
	reg := NewRegistry(store)
	opts := Options{Store: store}

	reg.Register("reading", "flag", Definition{Kind: Boolean, Default: true})
	reg.Register("reading", "text", Definition{Kind: String, Default: "", Sanitize: func(raw string) any {
		return "[" + raw + "]"
	}})
	reg.Register("other", "elsewhere", Definition{Kind: String})

	require.NoError(t, reg.Save("reading", map[string]string{"flag": "1", "text": "hi", "elsewhere": "x"}))
	assert.True(t, opts.Bool("flag", false))
	assert.Equal(t, "[hi]", opts.String("text", ""))
	assert.Equal(t, "unset", opts.String("elsewhere", "unset"))

	// an unchecked checkbox is absent from the form
	require.NoError(t, reg.Save("reading", map[string]string{"text": "hi"}))
	assert.False(t, opts.Bool("flag", true))
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry(setupStore(t))

	reg.Register("reading", "flag", Definition{Kind: String})
	reg.Register("reading", "flag", Definition{Kind: Boolean})

	require.Len(t, reg.Settings("reading"), 1)

	s, ok := reg.Lookup("flag")
	require.True(t, ok)
	assert.Equal(t, Boolean, s.Kind)
	assert.Equal(t, false, s.Sanitize("0"))
}

func TestRegistryUpdateErrors(t *testing.T) {
	reg := NewRegistry(failingStore{})

	require.ErrorIs(t, reg.Update("missing", "x"), ErrUnknownSetting)

	reg.Register("reading", "flag", Definition{Kind: Boolean})
	require.ErrorIs(t, reg.Update("flag", "1"), errBroken)
	require.ErrorIs(t, reg.Save("reading", nil), errBroken)
}

func TestRegistryFields(t *testing.T) {
	reg := NewRegistry(nil)

	render := func(s string) FieldRenderer {
		return func(w io.Writer) error {
			_, err := io.WriteString(w, s)
			return err
		}
	}

	reg.AddField(Field{ID: "a", Title: "A", Page: "reading", Section: "default", Render: render("a")})
	reg.AddField(Field{ID: "b", Title: "B", Page: "reading", Section: "default", Render: render("b")})
	reg.AddField(Field{ID: "c", Title: "C", Page: "writing", Section: "default", Render: render("c")})
	reg.AddField(Field{ID: "a", Title: "A2", Page: "reading", Section: "default", Render: render("a2")})

	fields := reg.Fields("reading")
	require.Len(t, fields, 2)
	assert.Equal(t, "A2", fields[0].Title)
	assert.Equal(t, "b", fields[1].ID)

	var buf bytes.Buffer
	require.NoError(t, fields[0].Render(&buf))
	assert.Equal(t, "a2", buf.String())
}

func TestSanitizeBool(t *testing.T) {
	assert.Equal(t, false, SanitizeBool(""))
	assert.Equal(t, false, SanitizeBool("0"))
	assert.Equal(t, true, SanitizeBool("1"))
	assert.Equal(t, true, SanitizeBool("on"))
}
