package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/property/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/logger"
	gRepo "rental/shared/repository"
)

const queryHasBookings = "SELECT EXISTS(SELECT 1 FROM bookings WHERE property_id = $1)"

type Property interface {
	Insert(ctx context.Context, model model.Property) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Property, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Property, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	HasBookings(ctx context.Context, propertyID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Property]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Property](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) HasBookings(ctx context.Context, propertyID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".property.HasBookings")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryHasBookings)

	var exist bool

	if err := r.db.Read.GetContext(ctx, &exist, queryHasBookings, propertyID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check property bookings: %w", err)
	}

	return exist, nil
}
