package services

import (
	"fmt"
	"strings"

	"tourway/internal/models/db_models"
	"tourway/internal/models/request_models"
)

// Fixed cardinalities the generator is asked for.
const (
	PlacesToVisitCount = 10
	PlacesToStayCount  = 5
)

const itinerarySchema = `{
  "transportation": {
    "flight": {"details": "1-2 sentences", "price": 1800000, "booking_url": "https://...", "isSelectedTransport": false},
    "train": {"details": "1-2 sentences", "price": 0, "booking_url": "https://...", "isSelectedTransport": false},
    "bus": {"details": "1-2 sentences", "price": 450000, "booking_url": "https://...", "isSelectedTransport": false},
    "self-drive": {"details": "1-2 sentences", "price": 0, "booking_url": "", "isSelectedTransport": false}
  },
  "places_to_visit": [
    {"placeName": "...", "details": "1-2 sentences", "ticket_price": 0, "best_time_to_visit": "...", "rating": 4.4, "total_user_rating": 65000}
  ],
  "places_to_stay": [
    {"placeName": "...", "details": "1-2 sentences", "price": 500000, "rating": 4.2, "total_user_rating": 999}
  ]
}`

// BuildTourPrompt turns trip parameters into the generation instruction. It is
// a pure transformation: any parameter combination yields a prompt embedding
// the full output contract, so it never fails.
func BuildTourPrompt(req request_models.CreateTourRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Generate a tour plan from Ho Chi Minh City to %s from %s to %s, suitable for %s travel, "+
			"with a minimum budget of %d VND and a maximum budget of %d VND.\n",
		req.Destination, req.CheckInDate, req.CheckOutDate, req.TravelType, req.MinBudget, req.MaxBudget)

	fmt.Fprintf(&b,
		"Write all text in Vietnamese and express every price in VND regardless of the destination.\n")

	fmt.Fprintf(&b,
		"The transportation object must contain exactly these four keys: %s.\n",
		strings.Join(db_models.TransportModes(), ", "))
	fmt.Fprintf(&b,
		"I want exactly %d places to visit and exactly %d places to stay. Detail of each thing only 1-2 sentences.\n",
		PlacesToVisitCount, PlacesToStayCount)

	b.WriteString("Follow this sample output exactly and generate for the requested destination:\n")
	b.WriteString(itinerarySchema)
	b.WriteString("\n\nReturn raw JSON only. No markdown fences, no comments, no surrounding text.")

	return b.String()
}
