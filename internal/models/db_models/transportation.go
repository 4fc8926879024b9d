package db_models

import "github.com/google/uuid"

// Transport modes the generator is asked to cover.
const (
	TransportFlight    = "flight"
	TransportTrain     = "train"
	TransportBus       = "bus"
	TransportSelfDrive = "self-drive"
)

func TransportModes() []string {
	return []string{TransportFlight, TransportTrain, TransportBus, TransportSelfDrive}
}

type Transportation struct {
	BaseModel
	TourID     uuid.UUID `gorm:"type:uuid;index"`
	Type       string
	Detail     string
	Price      int64
	BookingURL string
	IsSelected bool
}
