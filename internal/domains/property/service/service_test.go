package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/otel/mocks"
	s3Mocks "rental/infras/s3/mocks"
	propertyMocks "rental/internal/domains/property/mocks"
	"rental/internal/domains/property/model"
	"rental/internal/domains/property/model/dto"
	"rental/internal/domains/property/service"
	cacheMocks "rental/shared/cache/mocks"
	gDto "rental/shared/dto"
	"rental/shared/failure"
)

type fixture struct {
	repo  *propertyMocks.MockProperty
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	cfg   *config.Config
	svc   service.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:  propertyMocks.NewMockProperty(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
		cfg:   &config.Config{},
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func ownedProperty() model.Property {
	return model.Property{
		ID:            "property-1",
		OwnerID:       "owner-1",
		Title:         "Beach house",
		Location:      "Bali",
		PricePerNight: 100,
		Availability:  true,
		OwnerName:     "Olivia",
		OwnerEmail:    "owner@example.com",
	}
}

func TestPropertyService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreatePropertyRequest{
		Title:         "Beach house",
		Location:      "Bali",
		PricePerNight: 100,
	}

	var inserted model.Property

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, property model.Property) error {
			inserted = property

			return nil
		})
	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.Property, error) {
			property := inserted
			property.OwnerName = "Olivia"

			return property, nil
		})

	res, err := f.svc.Create(context.Background(), req, "owner-1")

	require.NoError(t, err)
	assert.Equal(t, "owner-1", inserted.OwnerID)
	assert.True(t, inserted.Availability)
	assert.Equal(t, inserted.ID, res.ID)
	assert.Equal(t, "Olivia", res.Owner.Name)
	assert.InDelta(t, 100, res.PricePerNight, 1e-9)
}

func TestPropertyService_Get(t *testing.T) {
	t.Run("cache miss loads from repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "property:get:property-1", gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)

		res, err := f.svc.Get(context.Background(), "property-1")

		require.NoError(t, err)
		assert.Equal(t, "Beach house", res.Title)
		assert.Equal(t, "owner@example.com", res.Owner.Email)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPropertyService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Property{ownedProperty()}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Properties, 1)
}

func TestPropertyService_Update(t *testing.T) {
	title := "Mountain cabin"
	price := 120.456

	tests := []struct {
		name      string
		actorID   string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:    "owner updates",
			actorID: "owner-1",
			setupMock: func(f *fixture) {
				updated := ownedProperty()
				updated.Title = title
				updated.PricePerNight = 120.46

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &title, fields[model.FieldTitle])
						assert.InDelta(t, 120.46, *fields[model.FieldPricePerNight].(*float64), 1e-9)
						assert.NotContains(t, fields, model.FieldLocation)

						return nil
					})
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
			},
		},
		{
			name:    "another owner is rejected",
			actorID: "owner-2",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "missing property",
			actorID: "owner-1",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(context.Background(), dto.UpdatePropertyRequest{Title: &title, PricePerNight: &price}, "property-1", tt.actorID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, title, res.Title)
		})
	}
}

func TestPropertyService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		actorID     string
		guardDelete bool
		setupMock   func(f *fixture)
		wantCode    int
	}{
		{
			name:    "unconditional delete",
			actorID: "owner-1",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:        "guard blocks delete with bookings",
			actorID:     "owner-1",
			guardDelete: true,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
				f.repo.EXPECT().HasBookings(gomock.Any(), "property-1").Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:        "guard allows delete without bookings",
			actorID:     "owner-1",
			guardDelete: true,
			setupMock: func(f *fixture) {
				property := ownedProperty()
				property.ImageURL = "https://cdn.example.com/property/a.png"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(property, nil)
				f.repo.EXPECT().HasBookings(gomock.Any(), "property-1").Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().GetObjectNameFromURL("property", property.ImageURL).Return("a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "property", "a.png").Return(nil)
			},
		},
		{
			name:    "non owner",
			actorID: "owner-2",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "repository failure",
			actorID: "owner-1",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.App.Property.GuardDelete = tt.guardDelete
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "property-1", tt.actorID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
