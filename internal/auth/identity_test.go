package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Mansoor88-6/time-tracking-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserIDFromContext(t *testing.T) {
	_, err := UserIDFromContext(context.Background())
	assert.True(t, apperr.IsErrorType(err, apperr.ErrorTypeUnauthorized))

	id, err := UserIDFromContext(WithUserID(context.Background(), "u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	reject := func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(apperr.HTTPStatus(err))
	}
	h := Middleware("X-Forwarded-User", reject, zap.NewNop())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-User", " u1 ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", seen)

	seen = ""
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DefaultUserHeader, "u1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, seen)
}
