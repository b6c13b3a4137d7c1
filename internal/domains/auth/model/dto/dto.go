package dto

import (
	"rental/infras/jwt"
	userModel "rental/internal/domains/user/model"
	userDto "rental/internal/domains/user/model/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required,max=100"`
	Role     string `json:"role"     validate:"required,oneof=Owner Customer"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(r.Email),
		Password: hashedPassword,
		Name:     r.Name,
		Role:     userModel.Role(r.Role),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}
