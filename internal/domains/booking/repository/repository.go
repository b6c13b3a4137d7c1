package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/booking/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/logger"
	gRepo "rental/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

// Half-open ranges [check_in, check_out) overlap when each starts before the other ends.
var queryHasOverlap = fmt.Sprintf(`SELECT EXISTS(
	SELECT 1 FROM bookings
	WHERE property_id = $1 AND status <> '%s' AND check_in_date < $3 AND check_out_date > $2
)`, model.StatusRejected)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error)
	GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Booking, error)
	UpdateRows(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	UpdateRowsTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	HasOverlap(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detail gRepo.Repository[model.BookingDetail]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error) {
	return r.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) HasOverlap(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasOverlap")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryHasOverlap)

	var exist bool

	err := r.db.Read.GetContext(ctx, &exist, queryHasOverlap, propertyID,
		checkIn.Format(constant.DateOnlyFormat), checkOut.Format(constant.DateOnlyFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return exist, nil
}
