package password_test

import (
	"rental/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "special characters", password: "P@ssw0rd!#$%^&*()"},
		{name: "empty password", password: "", wantErr: password.ErrEmptyPassword},
		{name: "longer than 72 bytes", password: strings.Repeat("a", 100), wantErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "secret123", hash: hash},
		{name: "wrong password", password: "secret124", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "secret123", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "secret123", hash: "not-a-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("samePassword")
	require.NoError(t, err)

	second, err := password.Hash("samePassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
