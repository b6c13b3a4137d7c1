package service

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/otel"
	"rental/internal/domains/auth/model/dto"
	userModel "rental/internal/domains/user/model"
	userDto "rental/internal/domains/user/model/dto"
	userRepo "rental/internal/domains/user/repository"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/password"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	errEmailRegistered    = "email already registered"
	errInvalidCredentials = "invalid email or password"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(email),
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString(errEmailRegistered) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return res, failure.BadRequestFromString(errEmailRegistered) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
