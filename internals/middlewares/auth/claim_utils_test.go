// internals/middlewares/auth/claim_utils_test.go
package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTokenExpiry(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(future)}, 0))
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(past)}, 0))
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{}, 0))

	// exp sebagai string juga harus kebaca
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": "bukan-angka"}, 0))

	// skew: token yang baru saja lewat masih diterima
	justExpired := time.Now().Add(-5 * time.Second).Unix()
	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(justExpired)}, 30*time.Second))
}

func TestExtractUserID(t *testing.T) {
	id := uuid.New()

	got, err := extractUserID(jwt.MapClaims{"id": id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = extractUserID(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = extractUserID(jwt.MapClaims{"id": 12345})
	assert.Error(t, err)

	_, err = extractUserID(jwt.MapClaims{"id": "bukan-uuid"})
	assert.Error(t, err)
}
