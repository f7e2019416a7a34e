package auth

import (
	"net/http/httptest"
	"testing"

	"venuehub/middleware"
	"venuehub/models"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := &models.User{
		UserID:   "u_abc123",
		Username: "casey",
		Role:     []string{models.RoleVendor},
	}

	token, err := GenerateAccessToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := middleware.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "u_abc123", claims.UserID)
	assert.Equal(t, "casey", claims.Username)
	assert.Equal(t, []string{models.RoleVendor}, claims.Role)
}

func TestRefreshTokenIsRandom(t *testing.T) {
	a, err := generateRefreshToken()
	assert.NoError(t, err)
	b, err := generateRefreshToken()
	assert.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHashTokenDeterministic(t *testing.T) {
	assert.Equal(t, hashToken("tok"), hashToken("tok"))
	assert.NotEqual(t, hashToken("tok"), hashToken("tok2"))
	assert.Len(t, hashToken("tok"), 64)
}

func TestGetBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, getBearerToken(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", getBearerToken(r))

	r.Header.Set("Authorization", "Token abc")
	assert.Empty(t, getBearerToken(r))
}
