package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/payment/model"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Payment interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Payment) error
	GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.PaymentDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	detail gRepo.Repository[model.PaymentDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.PaymentDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.PaymentDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}
