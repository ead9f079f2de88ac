package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository/memrepo"
	"movie-review/internal/session"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(r.Method))
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestMethodOverride(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MethodOverride)
	r.Patch("/movies/{id}", okHandler)
	r.Delete("/movies/{id}", okHandler)
	r.Post("/movies", okHandler)

	tests := []struct {
		name       string
		path       string
		method     string
		wantStatus int
		wantBody   string
	}{
		{name: "patch", path: "/movies/1", method: "patch", wantStatus: http.StatusOK, wantBody: http.MethodPatch},
		{name: "delete", path: "/movies/1", method: "DELETE", wantStatus: http.StatusOK, wantBody: http.MethodDelete},
		{name: "unsupported override stays post", path: "/movies", method: "GET", wantStatus: http.StatusOK, wantBody: http.MethodPost},
		{name: "no override", path: "/movies", method: "", wantStatus: http.StatusOK, wantBody: http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{"name": {"x"}}
			if tt.method != "" {
				values.Set(MethodOverrideField, tt.method)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, postForm(tt.path, values))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRequireLogin(t *testing.T) {
	h := RequireLogin("/sessions/new")(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies/1/reviews/new", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sessions/new", rec.Header().Get("Location"))

	sess := session.New()
	sess.Restore(1, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/movies/1/reviews/new", nil)
	req = req.WithContext(session.NewContext(req.Context(), sess))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	h := RedirectIfAuthenticated("/movies")(http.HandlerFunc(okHandler))

	sess := session.New()
	sess.Restore(1, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/users/new", nil)
	req = req.WithContext(session.NewContext(req.Context(), sess))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/movies", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/new", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadSession(t *testing.T) {
	repo, _ := memrepo.NewRepository()
	manager := session.NewManager(utils.SessionConfig{Secret: "secret", CookieName: "sid", ExpiryHours: 1}, "movie-review")

	active := &entity.Session{UserID: 9, Token: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Session.Create(context.Background(), active))
	revoked := &entity.Session{UserID: 9, Token: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Session.Create(context.Background(), revoked))
	require.NoError(t, repo.Session.Revoke(context.Background(), revoked.Token))

	var seen *session.Session
	h := LoadSession(manager, repo.Session, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.FromContext(r.Context())
	}))

	request := func(cookieValue string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		if cookieValue != "" {
			req.AddCookie(&http.Cookie{Name: "sid", Value: cookieValue})
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no cookie", func(t *testing.T) {
		request("")
		assert.False(t, seen.IsLoggedIn())
	})

	t.Run("active session", func(t *testing.T) {
		value, err := manager.Encode(active.Token, time.Now())
		require.NoError(t, err)
		rec := request(value)
		assert.True(t, seen.IsLoggedIn())
		assert.Equal(t, int64(9), seen.UserID)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("revoked session", func(t *testing.T) {
		value, err := manager.Encode(revoked.Token, time.Now())
		require.NoError(t, err)
		rec := request(value)
		assert.False(t, seen.IsLoggedIn())
		require.Len(t, rec.Result().Cookies(), 1)
		assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
	})

	t.Run("forged cookie", func(t *testing.T) {
		rec := request("forged.value.here")
		assert.False(t, seen.IsLoggedIn())
		require.Len(t, rec.Result().Cookies(), 1)
		assert.Equal(t, "sid", rec.Result().Cookies()[0].Name)
	})
}

func TestRateLimitPerIP(t *testing.T) {
	h := RateLimitPerIP(rate.Limit(0.001), 2, zap.NewNop())(http.HandlerFunc(okHandler))

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:3333"))

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111"))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIPLimiters_EvictsIdleClients(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newIPLimiters(rate.Limit(0.001), 1, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	for i := 0; i < 50; i++ {
		l.allow(fmt.Sprintf("198.51.100.%d", i))
	}
	assert.Equal(t, 51, l.size())

	// still inside the idle window: nothing is dropped
	now = now.Add(30 * time.Second)
	assert.False(t, l.allow("10.0.0.1"))
	assert.Equal(t, 51, l.size())

	// 10.0.0.1 was seen 45s ago, the others 75s ago
	now = now.Add(45 * time.Second)
	l.allow("10.0.0.2")
	assert.Equal(t, 2, l.size())
}

func TestLogger_RouteAndLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := chi.NewRouter()
	r.Use(Logger(zap.New(core)))
	r.Get("/movies/{id}", okHandler)
	r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseInternalError(w)
	})
	r.Get("/old", func(w http.ResponseWriter, r *http.Request) {
		utils.Redirect(w, r, "/movies")
	})

	for _, path := range []string{"/movies/7", "/broken", "/old", "/random-path-4d2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/movies/{id}", entries[0].ContextMap()["route"])
	assert.Equal(t, "/movies/7", entries[0].ContextMap()["path"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[1].ContextMap()["status"])

	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, "/movies", entries[2].ContextMap()["location"])

	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Equal(t, unmatchedRoute, entries[3].ContextMap()["route"])
}
