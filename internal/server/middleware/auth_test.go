package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/handlers"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/token"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokens() *token.Service {
	return token.NewService(
		token.SigningConfig{Secret: []byte("access-secret"), TTL: 30 * time.Minute},
		token.SigningConfig{Secret: []byte("reset-secret"), TTL: 15 * time.Minute},
	)
}

// echoUserHandler writes the context user ID, or "anonymous"
func echoUserHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := handlers.UserIDFromContext(r.Context())
		if !ok {
			userID = "anonymous"
		}
		_, _ = w.Write([]byte(userID))
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTestTokens()
	handler := AuthMiddleware(testLogger(), tokens)(echoUserHandler())

	accessToken, err := tokens.IssueAccessToken("user-123")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", authHeader: "Bearer " + accessToken, wantStatus: http.StatusOK, wantBody: "user-123"},
		{name: "lowercase scheme accepted", authHeader: "bearer " + accessToken, wantStatus: http.StatusOK, wantBody: "user-123"},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic " + accessToken, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAuthMiddleware_RejectsResetToken(t *testing.T) {
	tokens := newTestTokens()
	handler := AuthMiddleware(testLogger(), tokens)(echoUserHandler())

	resetToken, err := tokens.IssueResetToken("user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+resetToken)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	tokens := newTestTokens()
	handler := OptionalAuthMiddleware(testLogger(), tokens)(echoUserHandler())

	t.Run("anonymous passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("valid token populates context", func(t *testing.T) {
		accessToken, err := tokens.IssueAccessToken("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-123", w.Body.String())
	})

	t.Run("bad token is treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}
