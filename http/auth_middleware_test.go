package http

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserToken(t *testing.T) {
	id, err := ParseUserToken(signedToken(t, "u-42"), []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "u-42", id)
}

func TestParseUserToken_Rejects(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": signedToken(t, "u-1"),
		"expired":      expired,
		"no subject":   noSubject,
		"garbage":      "abc.def.ghi",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			secret := []byte(testSecret)
			if name == "wrong secret" {
				secret = []byte("other")
			}
			_, err := ParseUserToken(token, secret)
			assert.Error(t, err)
		})
	}
}
