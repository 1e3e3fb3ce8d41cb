package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(key, 42, "citizen", "go-test", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "citizen", claims.Role)
	assert.Equal(t, "go-test", claims.UserAgent)
}

func TestParseToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "wrong key",
			token: func(t *testing.T) string {
				token, err := GenerateToken([]byte("other"), 1, "admin", "", time.Hour)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				token, err := GenerateToken(key, 1, "admin", "", -time.Minute)
				require.NoError(t, err)
				return token
			},
		},
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not.a.token" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(key, tt.token(t))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
