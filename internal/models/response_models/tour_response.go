package response_models

type CreateTourResponse struct {
	TourID    string              `json:"tour_id"`
	Itinerary *GeneratedItinerary `json:"itinerary,omitempty"`
}

type TransportationResponse struct {
	ID         string `json:"id"`
	TourID     string `json:"tour_id"`
	Type       string `json:"type"`
	Detail     string `json:"detail"`
	Price      int64  `json:"price"`
	BookingURL string `json:"booking_url,omitempty"`
	IsSelected bool   `json:"is_selected"`
}

type PlaceToVisitResponse struct {
	ID              string  `json:"id"`
	TourID          string  `json:"tour_id"`
	Name            string  `json:"name"`
	Detail          string  `json:"detail"`
	ImageURL        string  `json:"image_url,omitempty"`
	TicketPrice     int64   `json:"ticket_price"`
	BestTimeToVisit string  `json:"best_time_to_visit"`
	DayVisit        int     `json:"day_visit"`
	Rating          float32 `json:"rating"`
	TotalRating     int64   `json:"total_rating"`
}

type PlaceToStayResponse struct {
	ID          string  `json:"id"`
	TourID      string  `json:"tour_id"`
	Name        string  `json:"name"`
	Detail      string  `json:"detail"`
	ImageURL    string  `json:"image_url,omitempty"`
	Price       int64   `json:"price"`
	Rating      float32 `json:"rating"`
	TotalRating int64   `json:"total_rating"`
	IsSelected  bool    `json:"is_selected"`
}

type TourResponse struct {
	ID           string `json:"id"`
	Destination  string `json:"destination"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	MinBudget    int64  `json:"min_budget"`
	MaxBudget    int64  `json:"max_budget"`
	TravelType   string `json:"travel_type"`
	CreatedBy    string `json:"created_by"`
	CreatedAt    string `json:"created_at"`
}
