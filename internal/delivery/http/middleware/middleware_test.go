package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/metrics"
	"mucevher-backend/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := domain.SessionFromContext(r.Context())
		_, _ = w.Write([]byte(id))
	})
}

func TestSessionMiddleware_IssuesNewSession(t *testing.T) {
	signer := utils.NewSessionSigner("secret", time.Hour)
	h := NewSessionMiddleware(signer, false)(echoSession())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	sessionID := rec.Body.String()
	require.NotEmpty(t, sessionID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	parsed, err := signer.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, sessionID, parsed)
	assert.Equal(t, cookies[0].Value, rec.Header().Get(utils.SessionHeaderName))
}

func TestSessionMiddleware_ReusesValidToken(t *testing.T) {
	signer := utils.NewSessionSigner("secret", time.Hour)
	h := NewSessionMiddleware(signer, false)(echoSession())
	token, err := signer.Issue("existing")
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "existing", rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(utils.SessionHeaderName, token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "existing", rec.Body.String())
	})
}

func TestSessionMiddleware_ReplacesForgedToken(t *testing.T) {
	forged, err := utils.NewSessionSigner("attacker", time.Hour).Issue("victim")
	require.NoError(t, err)

	h := NewSessionMiddleware(utils.NewSessionSigner("secret", time.Hour), false)(echoSession())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(utils.SessionHeaderName, forged)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEqual(t, "victim", rec.Body.String())
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestLocaleMiddleware(t *testing.T) {
	h := LocaleMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domain.LocaleFromContext(r.Context())))
	}))

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"default", "/", "", "tr"},
		{"query wins", "/?locale=en", "tr-TR", "en"},
		{"unsupported query ignored", "/?locale=de", "en-US,en;q=0.9", "en"},
		{"accept turkish", "/", "tr-TR,tr;q=0.9", "tr"},
		{"accept ranked", "/", "de-DE, en;q=0.8", "en"},
		{"no match", "/", "ja-JP", "tr"},
		{"malformed", "/", ";;;", "tr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	h := NewCORSMiddleware(&config.Config{AllowedOrigin: "https://mucevher.com.tr, http://localhost:3000"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), utils.SessionHeaderName)

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 2, time.Hour, time.Hour)
	defer rl.Shutdown()

	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("1.1.1.1"))
	assert.Equal(t, http.StatusOK, hit("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("1.1.1.1"))
	assert.Equal(t, http.StatusOK, hit("2.2.2.2"))
	assert.Equal(t, 2, rl.Clients())
}

func TestRateLimiter_CleanupRemovesStaleClients(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 1, time.Hour, time.Nanosecond)
	defer rl.Shutdown()

	rl.getVisitor("1.1.1.1")
	time.Sleep(time.Millisecond)
	rl.cleanup()
	assert.Equal(t, 0, rl.Clients())
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)
}

func TestMetricsMiddleware_LabelsByPattern(t *testing.T) {
	m := metrics.NewServerMetrics("test")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := NewMetricsMiddleware(m, mux)(mux)

	for _, path := range []string{"/api/v1/products/a", "/api/v1/products/b", "/nowhere"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET /api/v1/products/{slug}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("unmatched", "404")))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", getClientIP(req))
}
