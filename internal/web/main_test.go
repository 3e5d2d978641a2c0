package web

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	"github.com/eq-toolbox/eq-toolbox/internal/cta"
	"github.com/eq-toolbox/eq-toolbox/internal/db/controller/option"
	postctl "github.com/eq-toolbox/eq-toolbox/internal/db/controller/post"
	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
)

const (
	block     = `<div class="eq-toolbox-cta"><p>Subscribe now.</p></div>`
	adminUser = "admin"
	adminPass = "secret"
)

// testHashParams keeps argon2id fast in tests.
var testHashParams = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Option{}, &models.Post{}))

	for _, p := range []models.Post{
		{Slug: "hello-world", Title: "Hello", Content: "Hello world", Type: models.PostTypePost, Format: models.FormatHTML},
		{Slug: "placed", Title: "Placed", Content: `Before [eq_cta] after`, Type: models.PostTypePost, Format: models.FormatHTML},
		{Slug: "markdown", Title: "Markdown", Content: "Hello **md**", Type: models.PostTypePost, Format: models.FormatMarkdown},
		{Slug: "markdown-placed", Title: "Markdown placed", Content: `Hello [eq_cta show="1"]`, Type: models.PostTypePost, Format: models.FormatMarkdown},
		{Slug: "markdown-hidden", Title: "Markdown hidden", Content: `Hello [eq_cta show="0"]`, Type: models.PostTypePost, Format: models.FormatMarkdown},
		{Slug: "about", Title: "About", Content: "About us", Type: models.PostTypePage, Format: models.FormatHTML},
	} {
		require.NoError(t, postctl.Create(db, &p))
	}

	_, err = option.Set(db, cta.OptionCTA, []byte(`"Subscribe now."`))
	require.NoError(t, err)

	h := host.New(option.Store{DB: db})
	require.NoError(t, h.Load(cta.New(nil)))

	hash, err := argon2id.CreateHash(adminPass, testHashParams)
	require.NoError(t, err)

	cfg := &config.Config{
		Title:     "EQ Test",
		Admin:     config.Admin{Username: adminUser, PasswordHash: hash},
		Webserver: config.Webserver{URL: "http://example.test/", Realm: "EQ Test"},
	}

	return New(cfg, db, h)
}

func do(t *testing.T, s *Service, req *http.Request) (int, string, http.Header) {
	t.Helper()

	resp, err := s.App.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body), resp.Header
}

func get(t *testing.T, s *Service, target string) (int, string) {
	t.Helper()

	status, body, _ := do(t, s, httptest.NewRequest(http.MethodGet, target, nil))

	return status, body
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(adminUser+":"+adminPass)))

	return req
}

func TestFrontEnd(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name        string
		target      string
		status      int
		contains    []string
		notContains []string
	}{
		{
			name:     "single post",
			target:   "/posts/hello-world",
			status:   http.StatusOK,
			contains: []string{"Hello world" + block, `<style id="eq-toolbox-inline-inline-css">`, ".eq-toolbox-cta p{ margin:0; }"},
		},
		{
			name:        "shortcode placed by hand",
			target:      "/posts/placed",
			status:      http.StatusOK,
			contains:    []string{"Before " + block + " after"},
			notContains: []string{"[eq_cta]"},
		},
		{
			name:     "markdown post",
			target:   "/posts/markdown",
			status:   http.StatusOK,
			contains: []string{"<p>Hello <strong>md</strong></p>\n" + block},
		},
		{
			name:        "markdown post with quoted shortcode",
			target:      "/posts/markdown-placed",
			status:      http.StatusOK,
			contains:    []string{"<p>Hello " + block + "</p>"},
			notContains: []string{"[eq_cta", "show=&quot;"},
		},
		{
			name:        "markdown post hiding the shortcode",
			target:      "/posts/markdown-hidden",
			status:      http.StatusOK,
			contains:    []string{"<p>Hello </p>"},
			notContains: []string{`<div class="eq-toolbox-cta">`, "[eq_cta"},
		},
		{
			name:        "page",
			target:      "/pages/about",
			status:      http.StatusOK,
			contains:    []string{"About us"},
			notContains: []string{"eq-toolbox-cta", "eq-toolbox-inline"},
		},
		{
			name:        "post is not a page",
			target:      "/pages/hello-world",
			status:      http.StatusNotFound,
			notContains: []string{"eq-toolbox-cta"},
		},
		{
			name:   "unknown post",
			target: "/posts/missing",
			status: http.StatusNotFound,
		},
		{
			name:        "archive",
			target:      "/",
			status:      http.StatusOK,
			contains:    []string{`<div class="entry-content">Hello world</div>`, `href="/posts/hello-world"`},
			notContains: []string{"eq-toolbox-inline"},
		},
		{
			name:     "feed",
			target:   "/feed",
			status:   http.StatusOK,
			contains: []string{`<rss version="2.0">`, "<link>http://example.test/posts/hello-world</link>", "<description>Hello world</description>"},
		},
		{
			name:     "check alive",
			target:   CheckAlivePath,
			status:   http.StatusOK,
			contains: []string{"OK"},
		},
		{
			name:     "metrics",
			target:   MetricsPath,
			status:   http.StatusOK,
			contains: []string{"eq_toolbox_cta_injections_total"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, s, tt.target)
			assert.Equal(t, tt.status, status)

			for _, want := range tt.contains {
				assert.Contains(t, body, want)
			}

			for _, unwanted := range tt.notContains {
				assert.NotContains(t, body, unwanted)
			}
		})
	}
}

func TestFeedContentType(t *testing.T) {
	s := newTestService(t)

	status, _, header := do(t, s, httptest.NewRequest(http.MethodGet, "/feed", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/rss+xml; charset=utf-8", header.Get("Content-Type"))
}

func TestCheckAliveWhileShuttingDown(t *testing.T) {
	s := newTestService(t)
	s.alive.Store(false)

	status, _ := get(t, s, CheckAlivePath)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, s.Alive())
}

func TestAdminRequiresAuth(t *testing.T) {
	s := newTestService(t)

	status, _, header := do(t, s, httptest.NewRequest(http.MethodGet, "/admin/options-reading", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, header.Get("WWW-Authenticate"), `realm="EQ Test"`)

	req := httptest.NewRequest(http.MethodGet, "/admin/options-reading", nil)
	req.SetBasicAuth(adminUser, "wrong")

	status, _, _ = do(t, s, req)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// adminForm loads the reading screen and returns its csrf cookie and token.
func adminForm(t *testing.T, s *Service) (*http.Cookie, string, string) {
	t.Helper()

	resp, err := s.App.Test(asAdmin(httptest.NewRequest(http.MethodGet, "/admin/options-reading", nil)))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := string(raw)

	m := regexp.MustCompile(`name="_csrf" value="([^"]+)"`).FindStringSubmatch(body)
	require.Len(t, m, 2, "csrf token missing from form")

	for _, c := range resp.Cookies() {
		if c.Name == CSRFCookie {
			return c, m[1], body
		}
	}

	require.FailNow(t, "csrf cookie not set")

	return nil, "", ""
}

func postReading(t *testing.T, s *Service, cookie *http.Cookie, token string, form url.Values) (int, string) {
	t.Helper()

	if token != "" {
		form.Set("_csrf", token)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/options-reading", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	status, body, _ := do(t, s, asAdmin(req))

	return status, body
}

func TestReadingSettings(t *testing.T) {
	s := newTestService(t)

	cookie, token, body := adminForm(t, s)
	assert.Contains(t, body, "EQ Toolbox: activar CTA en posts")
	assert.Contains(t, body, "EQ Toolbox: texto del CTA")
	assert.Contains(t, body, `name="eq_toolbox_enable_cta" value="1" checked="checked"`)
	assert.Contains(t, body, "Subscribe now.</textarea>")

	post := func(form url.Values) (int, string) {
		return postReading(t, s, cookie, token, form)
	}

	// an unchecked checkbox is not sent
	status, body := post(url.Values{cta.OptionCTA: {"Join <b>us</b><script>x()</script>"}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Ajustes guardados.")
	assert.Contains(t, body, "Join &lt;b&gt;us&lt;/b&gt;</textarea>")
	assert.NotContains(t, body, `checked="checked"`)

	_, body = get(t, s, "/posts/hello-world")
	assert.NotContains(t, body, "eq-toolbox-cta\">")

	status, _ = post(url.Values{cta.OptionEnable: {"1"}, cta.OptionCTA: {"Join <b>us</b>"}})
	require.Equal(t, http.StatusOK, status)

	_, body = get(t, s, "/posts/hello-world")
	assert.Contains(t, body, `Hello world<div class="eq-toolbox-cta"><p>Join <b>us</b></p></div>`)

	// quotes survive a save and show as typed
	status, body = post(url.Values{cta.OptionEnable: {"1"}, cta.OptionCTA: {`Don't miss "this" & more`}})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `Don&#39;t miss &#34;this&#34; &amp; more</textarea>`)

	// whitespace only text hides the block
	status, _ = post(url.Values{cta.OptionEnable: {"1"}, cta.OptionCTA: {"   "}})
	require.Equal(t, http.StatusOK, status)

	_, body = get(t, s, "/posts/hello-world")
	assert.NotContains(t, body, `<div class="eq-toolbox-cta">`)
}

func TestReadingSettingsRequiresCSRFToken(t *testing.T) {
	s := newTestService(t)
	cookie, token, _ := adminForm(t, s)

	tests := []struct {
		name   string
		cookie *http.Cookie
		token  string
		status int
	}{
		{name: "no token", cookie: cookie, status: http.StatusForbidden},
		{name: "no cookie", token: token, status: http.StatusForbidden},
		{name: "wrong token", cookie: cookie, token: "forged", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := postReading(t, s, tt.cookie, tt.token, url.Values{cta.OptionCTA: {"Forged"}})
			assert.Equal(t, tt.status, status)
		})
	}

	_, body := get(t, s, "/posts/hello-world")
	assert.Contains(t, body, block)
	assert.NotContains(t, body, "Forged")
}

func TestReadingSettingsRejectsOversizedValue(t *testing.T) {
	s := newTestService(t)
	cookie, token, _ := adminForm(t, s)

	status, body := postReading(t, s, cookie, token, url.Values{cta.OptionCTA: {strings.Repeat("a", 65536)}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "no son válidos")

	_, body = get(t, s, "/posts/hello-world")
	assert.Contains(t, body, block)
}

func TestAdminRootRedirects(t *testing.T) {
	s := newTestService(t)

	status, _, header := do(t, s, asAdmin(httptest.NewRequest(http.MethodGet, "/admin/", nil)))
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/options-reading", header.Get("Location"))
}
