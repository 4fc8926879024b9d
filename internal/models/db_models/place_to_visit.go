package db_models

import "github.com/google/uuid"

type PlaceToVisit struct {
	BaseModel
	TourID          uuid.UUID `gorm:"type:uuid;index"`
	Name            string
	Detail          string
	ImageURL        string
	TicketPrice     int64
	BestTimeToVisit string
	// 0 means the place has not been assigned to a day yet
	DayVisit    int
	Rating      float32
	TotalRating int64
}
