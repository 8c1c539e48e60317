package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat-test")

	token, err := GenerateToken("42", "ADMIN")
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken("1", "EDITOR")
	assert.Error(t, err)
	_, err = VerifyToken("abc")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "khoa-mot")
	token, err := GenerateToken("7", "EDITOR")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "khoa-hai")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsOtherAlg(t *testing.T) {
	t.Setenv("JWT_SECRET", "bi-mat-test")

	// token ký thuật toán khác (kể cả cùng key) phải bị từ chối
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{UserID: "1", Role: "ADMIN"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyToken(raw)
	assert.Error(t, err)
}
