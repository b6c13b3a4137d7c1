package service

import (
	"context"
	"fmt"
	"rental/infras/otel"
	"rental/internal/domains/user/model"
	"rental/internal/domains/user/model/dto"
	"rental/internal/domains/user/repository"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/failure"

	"github.com/rs/zerolog/log"
)

type User interface {
	Me(ctx context.Context, userID string) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo repository.User
	otel otel.Otel
}

func New(repo repository.User, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Me(ctx context.Context, userID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}
