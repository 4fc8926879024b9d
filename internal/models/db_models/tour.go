package db_models

import "github.com/google/uuid"

type Tour struct {
	BaseModel
	Destination  string
	CheckInDate  string
	CheckOutDate string
	MinBudget    int64
	MaxBudget    int64
	TravelType   string
	CreatedBy    uuid.UUID

	Transportations []Transportation `gorm:"foreignKey:TourID"`
	PlacesToVisit   []PlaceToVisit   `gorm:"foreignKey:TourID"`
	PlacesToStay    []PlaceToStay    `gorm:"foreignKey:TourID"`
}
