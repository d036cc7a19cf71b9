package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/config"
	"wedding-planner/internal/database"
	"wedding-planner/internal/server"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		AppTitle:      "Nidhi & Tushar Wedding",
		Port:          "0",
		SessionSecret: "test-secret",
		DatabasePath:  filepath.Join(t.TempDir(), "test.db"),
	}

	store, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := server.New(cfg, store, auth.NewDirectory(auth.DefaultUsers()), zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func testClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(rawURL)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(rawURL, form)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func login(t *testing.T, c *http.Client, base, username, pin string) {
	t.Helper()
	resp, _ := postForm(t, c, base+"/login", url.Values{
		"username": {username},
		"pin":      {pin},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/", resp.Request.URL.Path, "login should land on the dashboard")
}

func TestSessionCookieWorksOverPlainHTTP(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := c.PostForm(ts.URL+"/login", url.Values{
		"username": {"vijay"},
		"pin":      {"1234"},
	})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "wedding-session" {
			session = ck
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.False(t, session.Secure, "cookie must be accepted without TLS")
	assert.NotEqual(t, http.SameSiteNoneMode, session.SameSite)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, "/", session.Path)

	// The jar kept the cookie, so the identity persists.
	c.CheckRedirect = nil
	resp, _ = get(t, c, ts.URL+"/events")
	assert.Equal(t, "/events", resp.Request.URL.Path)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)

	for _, path := range []string{"/", "/events", "/guests", "/commercials"} {
		resp, _ := get(t, c, ts.URL+path)
		assert.Equal(t, "/login", resp.Request.URL.Path, "path %s", path)
	}
}

func TestLoginRejectsBadPIN(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)

	resp, body := postForm(t, c, ts.URL+"/login", url.Values{
		"username": {"vijay"},
		"pin":      {"9999"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or PIN")

	// Unknown user fails with the very same message.
	resp, body = postForm(t, c, ts.URL+"/login", url.Values{
		"username": {"nobody"},
		"pin":      {"1234"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or PIN")
}

func TestLoginIsCaseInsensitiveOnUsername(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "  ViJaY  ", "1234")
}

func TestMemberSeesEventsReadOnly(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "member", "0000")

	resp, body := get(t, c, ts.URL+"/events")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Venue Finalisation", "seeded event should be listed")
	assert.Contains(t, body, "read-only access")
	assert.NotContains(t, body, "Add Event")
	assert.NotContains(t, body, "/events/delete")
}

func TestAdminCreatesEvent(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "vijay", "1234")

	resp, _ := postForm(t, c, ts.URL+"/events", url.Values{
		"title": {"Haldi"},
		"date":  {"2026-02-01"},
		"time":  {"10:00"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := get(t, c, ts.URL+"/events")
	assert.Contains(t, body, "Haldi")
	assert.Contains(t, body, "2026-02-01 10:00")
	assert.Contains(t, body, "Vijay", "creator name recorded")
}

func TestMemberCannotCreateEvent(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "member", "0000")

	resp, body := postForm(t, c, ts.URL+"/events", url.Values{
		"title": {"Sneaky"},
		"date":  {"2026-02-01"},
		"time":  {"10:00"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Access denied")

	_, body = get(t, c, ts.URL+"/events")
	assert.NotContains(t, body, "Sneaky")
}

func TestCommercialsSuperAdminOnly(t *testing.T) {
	ts := testServer(t)

	for _, tc := range []struct {
		username, pin string
	}{
		{"samdharsi", "1111"},
		{"tushar", "2222"},
		{"member", "0000"},
	} {
		c := testClient(t)
		login(t, c, ts.URL, tc.username, tc.pin)
		resp, body := get(t, c, ts.URL+"/commercials")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "user %s", tc.username)
		assert.Contains(t, body, "Access denied")
	}

	c := testClient(t)
	login(t, c, ts.URL, "vijay", "1234")

	for _, amount := range []string{"1500.50", "2499.50"} {
		resp, _ := postForm(t, c, ts.URL+"/commercials", url.Values{
			"category": {"Venue"},
			"amount":   {amount},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := get(t, c, ts.URL+"/commercials")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "₹ 4000.00")
}

func TestPurchasesHiddenFromMember(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "member", "0000")

	resp, _ := get(t, c, ts.URL+"/purchases")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The nav link is hidden too.
	_, body := get(t, c, ts.URL+"/events")
	assert.NotContains(t, body, `href="/purchases"`)
}

func TestBrideAdminSeesPurchasesButNotCommercials(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "samdharsi", "1111")

	resp, _ := get(t, c, ts.URL+"/purchases")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := get(t, c, ts.URL+"/events")
	assert.Contains(t, body, `href="/purchases"`)
	assert.NotContains(t, body, `href="/commercials"`)
}

func TestInvalidPurchaseAmountRejected(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "vijay", "1234")

	resp, body := postForm(t, c, ts.URL+"/purchases", url.Values{
		"category": {"Clothes"},
		"item":     {"Sherwani"},
		"amount":   {"not-a-number"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Amount must be a number.")
	assert.NotContains(t, body, "<td>Sherwani</td>", "no row should have been written")
}

func TestGuestLifecycleAndCSV(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "tushar", "2222")

	resp, _ := postForm(t, c, ts.URL+"/guests", url.Values{
		"name":     {"Ramesh Garg"},
		"side":     {"Groom"},
		"relation": {"Uncle"},
		"phone":    {"9876543210"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := get(t, c, ts.URL+"/guests")
	assert.Contains(t, body, "Ramesh Garg")

	resp, csv := get(t, c, ts.URL+"/guests/download-csv")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, csv, "Name,Side,Relation,Phone,Visited,Stay,Room")
	assert.Contains(t, csv, "Ramesh Garg")
}

func TestEditMissingRecordFlashes(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "vijay", "1234")

	resp, body := get(t, c, ts.URL+"/events/edit/9999")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/events", resp.Request.URL.Path)
	assert.Contains(t, body, "Event not found.")
}

func TestUnknownPathIs404(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "vijay", "1234")

	resp, body := get(t, c, ts.URL+"/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

func TestLogoutEndsSession(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)
	login(t, c, ts.URL, "vijay", "1234")

	resp, _ := get(t, c, ts.URL+"/logout")
	assert.Equal(t, "/login", resp.Request.URL.Path)

	resp, _ = get(t, c, ts.URL+"/events")
	assert.Equal(t, "/login", resp.Request.URL.Path)
}

func TestMetricsExposed(t *testing.T) {
	ts := testServer(t)
	c := testClient(t)

	resp, body := get(t, c, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, "go_goroutines") || strings.Contains(body, "# HELP"))
}
