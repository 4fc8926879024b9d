package request_models

type CreateTourRequest struct {
	Destination  string `json:"destination" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
	MinBudget    int64  `json:"min_budget" binding:"required,min=0"`
	MaxBudget    int64  `json:"max_budget" binding:"required,gtefield=MinBudget"`
	TravelType   string `json:"travel_type" binding:"required"`
}

type DayVisitUpdate struct {
	PlaceID  string `json:"place_id" binding:"required"`
	DayVisit int    `json:"day_visit" binding:"required,min=1"`
}

type UpdateDayVisitsRequest struct {
	Updates []DayVisitUpdate `json:"updates" binding:"required,min=1,dive"`
}

type StaySelectionUpdate struct {
	PlaceID    string `json:"place_id" binding:"required"`
	IsSelected bool   `json:"is_selected"`
}

type UpdateStaySelectionsRequest struct {
	Updates []StaySelectionUpdate `json:"updates" binding:"required,min=1,dive"`
}

type SwapTransportationRequest struct {
	OldID string `json:"old_id" binding:"required"`
	NewID string `json:"new_id" binding:"required"`
}
