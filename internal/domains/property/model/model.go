package model

import (
	"fmt"
	"rental/shared/constant"
	"rental/shared/model"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID            = "id"
	FieldOwnerID       = "owner_id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldLocation      = "location"
	FieldPricePerNight = "price_per_night"
	FieldAvailability  = "availability"
	FieldImageURL      = "image_url"
)

type Property struct {
	ID            string  `db:"id"`
	OwnerID       string  `db:"owner_id"`
	Title         string  `db:"title"`
	Description   string  `db:"description"`
	Location      string  `db:"location"`
	PricePerNight float64 `db:"price_per_night"`
	Availability  bool    `db:"availability"`
	ImageURL      string  `db:"image_url"`
	OwnerName     string  `db:"owner_name"  table:"users" column:"name"`
	OwnerEmail    string  `db:"owner_email" table:"users" column:"email"`
	model.Metadata
}

func (Property) GetJoinQuery() string {
	return fmt.Sprintf("JOIN users ON users.id = %s.%s", TableName, FieldOwnerID)
}

// CanManage reports whether actorID may change or remove the property.
func CanManage(actorID string, property Property) bool {
	return actorID != constant.Empty && property.OwnerID == actorID
}
