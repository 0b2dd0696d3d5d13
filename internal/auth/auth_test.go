package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

func TestTokenRoundTrip(t *testing.T) {
	m := auth.NewTokenManager("segredo-de-teste", time.Hour)

	in := auth.Identity{
		UserID: "ptn-1",
		Name:   "Ana",
		Email:  "ana@exemplo.com",
		Role:   entity.RolePartner,
		Status: entity.PartnerApproved,
	}

	token, exp, err := m.Issue(in)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	out, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, _, err := auth.NewTokenManager("a", time.Hour).Issue(auth.Identity{UserID: "x", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = auth.NewTokenManager("b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := auth.NewTokenManager("a", -time.Minute)
	token, _, err := m.Issue(auth.Identity{UserID: "x", Role: entity.RolePartner})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := auth.HashPassword("senha-forte-123")
	require.NoError(t, err)

	assert.True(t, auth.CheckPasswordHash("senha-forte-123", hash))
	assert.False(t, auth.CheckPasswordHash("outra", hash))
	assert.False(t, auth.CheckPasswordHash("senha-forte-123", ""))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := auth.FromContext(r.Context())
		w.Write([]byte(id.UserID))
	})
}

func TestAuthenticateMiddleware(t *testing.T) {
	m := auth.NewTokenManager("segredo", time.Hour)
	h := auth.Authenticate(m)(okHandler())

	t.Run("Sem token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, "UNAUTHORIZED", body["error"])
	})

	t.Run("Token inválido", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer lixo")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token válido", func(t *testing.T) {
		token, _, _ := m.Issue(auth.Identity{UserID: "ptn-9", Role: entity.RolePartner, Status: entity.PartnerApproved})
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ptn-9", w.Body.String())
	})
}

func TestRequireRoleAndApproved(t *testing.T) {
	serve := func(id auth.Identity, h http.Handler) int {
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(auth.WithIdentity(req.Context(), id))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	admin := auth.Identity{UserID: "adm", Role: entity.RoleAdmin, Status: entity.PartnerApproved}
	pending := auth.Identity{UserID: "p1", Role: entity.RolePartner, Status: entity.PartnerPendingApproval}
	approved := auth.Identity{UserID: "p2", Role: entity.RolePartner, Status: entity.PartnerApproved}

	adminOnly := auth.RequireRole(entity.RoleAdmin)(okHandler())
	assert.Equal(t, http.StatusOK, serve(admin, adminOnly))
	assert.Equal(t, http.StatusForbidden, serve(approved, adminOnly))

	approvedOnly := auth.RequireApproved(okHandler())
	assert.Equal(t, http.StatusOK, serve(approved, approvedOnly))
	assert.Equal(t, http.StatusForbidden, serve(pending, approvedOnly))
}
