package db_models

import "github.com/google/uuid"

type PlaceToStay struct {
	BaseModel
	TourID      uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Detail      string
	ImageURL    string
	Price       int64
	Rating      float32
	TotalRating int64
	IsSelected  bool
}
