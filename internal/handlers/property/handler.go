package property

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/property/model"
	"rental/internal/domains/property/model/dto"
	"rental/internal/domains/property/service"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/validator"
	"rental/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamLocation     = "location"
	queryParamMinPrice     = "minPrice"
	queryParamMaxPrice     = "maxPrice"
	queryParamAvailability = "availability"

	argMinPrice = "min_price"
	argMaxPrice = "max_price"
)

var sortableColumns = []string{
	constant.FieldCreatedAt,
	model.FieldTitle,
	model.FieldLocation,
	model.FieldPricePerNight,
}

type Handler struct {
	service service.Property
	otel    otel.Otel
}

func New(service service.Property, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/properties", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProperty)
		routerGroup.Get("/", handler.GetProperties)
		routerGroup.Get("/{id}", handler.GetPropertyByID)
		routerGroup.Put("/{id}", handler.UpdateProperty)
		routerGroup.Delete("/{id}", handler.DeleteProperty)
		routerGroup.Post("/{id}/image", handler.UploadImage)
	})
}

// CreateProperty lists a new property for the authenticated owner.
// @Summary Create a property
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.CreatePropertyRequest true "Create Property Request"
// @Success 201 {object} response.Data[dto.PropertyResponse] "Created property"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [post]
// @Security BearerAuth
func (handler *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProperty")
	defer scope.End()

	req := dto.CreatePropertyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Create(ctx, req, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create property")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetProperties lists properties with optional filters and pagination.
// @Summary Get all properties
// @Tags Property
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Filter by title"
// @Param location query string false "Filter by location"
// @Param minPrice query number false "Minimum price per night"
// @Param maxPrice query number false "Maximum price per night"
// @Param availability query boolean false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetPropertiesResponse] "List of properties"
// @Failure 500 {object} response.Error
// @Router /v1/properties [get]
func (handler *Handler) GetProperties(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProperties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(sortableColumns...)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = constant.FieldCreatedAt
		queryParams.SortDir = gDto.SortDirDesc
	} else if queryParams.SortDir == constant.Empty {
		queryParams.SortDir = gDto.SortDirAsc
	}

	// owner columns are joined in, so the sort column needs its table
	queryParams.SortBy = model.TableName + "." + queryParams.SortBy

	res, err := handler.service.GetAll(ctx, queryParams, propertyFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get properties")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Properties retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

func propertyFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if search := query.Get(constant.RequestParamSearch); search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		})
	}

	if location := query.Get(queryParamLocation); location != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    location,
			Table:    model.TableName,
		})
	}

	if minPrice, err := strconv.ParseFloat(query.Get(queryParamMinPrice), 64); err == nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  argMinPrice,
			Field:    model.FieldPricePerNight,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    minPrice,
			Table:    model.TableName,
		})
	}

	if maxPrice, err := strconv.ParseFloat(query.Get(queryParamMaxPrice), 64); err == nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  argMaxPrice,
			Field:    model.FieldPricePerNight,
			Operator: gDto.FilterOperatorLessEq,
			Value:    maxPrice,
			Table:    model.TableName,
		})
	}

	if availability := shared.ConvertStringToBool(query.Get(queryParamAvailability)); availability != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAvailability,
			Operator: gDto.FilterOperatorEq,
			Value:    *availability,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// GetPropertyByID returns one property with its owner summary.
// @Summary Get a property by ID
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Data[dto.PropertyResponse] "Property details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [get]
func (handler *Handler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPropertyByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateProperty changes the given fields of a property the caller owns.
// @Summary Update a property
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.UpdatePropertyRequest true "Update Property Request"
// @Success 200 {object} response.Data[dto.PropertyResponse] "Updated property"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProperty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdatePropertyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Update(ctx, req, id, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update property")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// UploadImage replaces the image of a property the caller owns.
// @Summary Upload a property image
// @Tags Property
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Property ID"
// @Param image formData file true "Property image"
// @Success 200 {object} response.Data[dto.PropertyResponse] "Updated property"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/image [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadImageRequest{}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.UploadImage(ctx, req, id, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload property image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property image uploaded by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteProperty removes a property the caller owns.
// @Summary Delete a property
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Message "Property deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProperty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.Delete(ctx, id, user); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete property")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Property deleted successfully")
}
