package dto

import (
	"mime/multipart"
	"rental/internal/domains/property/model"
	userDto "rental/internal/domains/user/model/dto"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Title         string  `json:"title"         validate:"required,max=255"`
	Description   string  `json:"description"   validate:"omitempty,max=5000"`
	Location      string  `json:"location"      validate:"required,max=255"`
	PricePerNight float64 `json:"pricePerNight" validate:"required,gt=0"`
	Availability  *bool   `json:"availability"  validate:"omitempty"`
}

func (c *CreatePropertyRequest) ToModel(ownerID string) model.Property {
	availability := true
	if c.Availability != nil {
		availability = *c.Availability
	}

	now := timezone.Now()

	return model.Property{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         c.Title,
		Description:   c.Description,
		Location:      c.Location,
		PricePerNight: shared.RoundMoney(c.PricePerNight),
		Availability:  availability,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}
}

type UpdatePropertyRequest struct {
	Title         *string  `db:"title"           json:"title"         validate:"omitempty,min=1,max=255"`
	Description   *string  `db:"description"     json:"description"   validate:"omitempty,max=5000"`
	Location      *string  `db:"location"        json:"location"      validate:"omitempty,min=1,max=255"`
	PricePerNight *float64 `db:"price_per_night" json:"pricePerNight" validate:"omitempty,gt=0"`
	Availability  *bool    `db:"availability"    json:"availability"  validate:"omitempty"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}

type PropertyResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Location      string              `json:"location"`
	PricePerNight float64             `json:"pricePerNight"`
	Availability  bool                `json:"availability"`
	ImageURL      string              `json:"imageUrl,omitempty"`
	OwnerID       string              `json:"ownerId"`
	Owner         userDto.UserSummary `json:"owner"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(model model.Property) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Location = model.Location
	r.PricePerNight = model.PricePerNight
	r.Availability = model.Availability
	r.ImageURL = model.ImageURL
	r.OwnerID = model.OwnerID
	r.Owner = userDto.UserSummary{
		ID:    model.OwnerID,
		Name:  model.OwnerName,
		Email: model.OwnerEmail,
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}
