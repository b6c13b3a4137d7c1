package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rental/infras/jwt"
	"rental/internal/domains/auth/model/dto"
	userModel "rental/internal/domains/user/model"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "Owner@Example.com",
		Password: "secret1",
		Name:     "Olivia",
		Role:     "Owner",
	}

	user := req.ToUserModel("guest", "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, userModel.RoleOwner, user.Role)
	assert.Equal(t, "guest", user.CreatedBy)
	assert.Equal(t, user.CreatedAt, user.ModifiedAt)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}
