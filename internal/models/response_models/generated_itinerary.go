package response_models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber accepts both bare JSON numbers and quoted numbers, because the
// completion service does not reliably honor one or the other ("4.4" vs 4.4).
// Garbage decodes to zero instead of failing the whole document.
type FlexNumber float64

var _ json.Unmarshaler = (*FlexNumber)(nil)

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexNumber(v)
	return nil
}

func (f FlexNumber) Int64() int64     { return int64(f) }
func (f FlexNumber) Float32() float32 { return float32(f) }

// GeneratedItinerary is the parsed form of a sanitized completion. The three
// top-level sections are required; a nil field means the section was absent
// from the payload, which is distinct from a present-but-empty one.
type GeneratedItinerary struct {
	Transportation map[string]GeneratedTransportation `json:"transportation"`
	PlacesToVisit  []GeneratedPlaceToVisit            `json:"places_to_visit"`
	PlacesToStay   []GeneratedPlaceToStay             `json:"places_to_stay"`
}

type GeneratedTransportation struct {
	Details             string     `json:"details"`
	Price               FlexNumber `json:"price"`
	BookingURL          string     `json:"booking_url"`
	IsSelectedTransport bool       `json:"isSelectedTransport"`
}

type GeneratedPlaceToVisit struct {
	PlaceName       string     `json:"placeName"`
	Details         string     `json:"details"`
	ImageURL        string     `json:"image_url"`
	TicketPrice     FlexNumber `json:"ticket_price"`
	BestTimeToVisit string     `json:"best_time_to_visit"`
	Rating          FlexNumber `json:"rating"`
	TotalUserRating FlexNumber `json:"total_user_rating"`
}

type GeneratedPlaceToStay struct {
	PlaceName       string     `json:"placeName"`
	Details         string     `json:"details"`
	ImageURL        string     `json:"image_url"`
	Price           FlexNumber `json:"price"`
	Rating          FlexNumber `json:"rating"`
	TotalUserRating FlexNumber `json:"total_user_rating"`
}
