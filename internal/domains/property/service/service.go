package service

import (
	"context"
	"fmt"
	"path/filepath"

	"rental/config"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/property/model"
	"rental/internal/domains/property/model/dto"
	"rental/internal/domains/property/repository"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
	cacheCountProperty  = "property:count"

	errPropertyNotFound = "property not found"
)

type Property interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest, ownerID string) (dto.PropertyResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	Update(ctx context.Context, req dto.UpdatePropertyRequest, id, actorID string) (dto.PropertyResponse, error)
	UploadImage(ctx context.Context, req dto.UploadImageRequest, id, actorID string) (dto.PropertyResponse, error)
	Delete(ctx context.Context, id, actorID string) error
}

type serviceImpl struct {
	repo  repository.Property
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Property {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePropertyRequest, ownerID string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	property := req.ToModel(ownerID)

	if err = s.repo.Insert(ctx, property); err != nil {
		log.Error().Err(err).Msg("failed to create property")

		return res, fmt.Errorf("failed to create property: %w", err)
	}

	s.invalidateLists(ctx)

	return s.getFresh(ctx, property.ID)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	res, err = s.getFresh(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePropertyRequest, id, actorID string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.getOwned(ctx, id, actorID)
	if err != nil {
		return res, err
	}

	if req.PricePerNight != nil {
		price := shared.RoundMoney(*req.PricePerNight)
		req.PricePerNight = &price
	}

	updatedFields := shared.TransformFields(req, actorID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update property")

		return res, fmt.Errorf("failed to update property: %w", err)
	}

	s.invalidate(ctx, current.ID)

	return s.getFresh(ctx, current.ID)
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, id, actorID string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.getOwned(ctx, id, actorID)
	if err != nil {
		return res, err
	}

	filename := uuid.NewString() + filepath.Ext(req.Image.Filename)

	url, err := s.s3.UploadFile(ctx, model.EntityName, req.ImageFile, req.Image, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	updatedFields := shared.TransformFields(struct {
		ImageURL string `db:"image_url"`
	}{ImageURL: url}, actorID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update property image")

		if err := s.s3.DeleteFile(ctx, model.EntityName, filename); err != nil {
			log.Error().Err(err).Msg("failed to delete uploaded image")
		}

		return res, fmt.Errorf("failed to update property image: %w", err)
	}

	s.deleteImage(ctx, current.ImageURL)
	s.invalidate(ctx, current.ID)

	return s.getFresh(ctx, current.ID)
}

func (s *serviceImpl) Delete(ctx context.Context, id, actorID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.getOwned(ctx, id, actorID)
	if err != nil {
		return err
	}

	if s.cfg.App.Property.GuardDelete {
		hasBookings, err := s.repo.HasBookings(ctx, current.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to check property bookings")

			return fmt.Errorf("failed to check property bookings: %w", err)
		}

		if hasBookings {
			return failure.Conflict("property has bookings and cannot be deleted") // nolint:wrapcheck
		}
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete property")

		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.deleteImage(ctx, current.ImageURL)
	s.invalidate(ctx, current.ID)

	return nil
}

func (s *serviceImpl) getFresh(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound(errPropertyNotFound) // nolint:wrapcheck
	}

	res.FromModel(property)

	return res, nil
}

// getOwned loads the property and checks that actorID owns it.
func (s *serviceImpl) getOwned(ctx context.Context, id, actorID string) (model.Property, error) {
	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return property, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return property, failure.NotFound(errPropertyNotFound) // nolint:wrapcheck
	}

	if !model.CanManage(actorID, property) {
		log.Warn().Str("property_id", id).Str("user_id", actorID).Msg("property ownership check failed")

		return property, failure.ResourceRestrictedError
	}

	return property, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, imageURL string) {
	if imageURL == constant.Empty {
		return
	}

	objectName := s.s3.GetObjectNameFromURL(model.EntityName, imageURL)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, model.EntityName, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete property image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete property from cache")
		}
	}()

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()
}
