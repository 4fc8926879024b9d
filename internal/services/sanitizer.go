package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tourway/internal/models/response_models"
	"tourway/pkg/utils"
)

const fenceMarker = "```"

// SanitizeCompletion strips a markdown fence the model may wrap its output in
// despite being told not to. Input without a leading fence is returned
// unchanged, so the function is idempotent.
func SanitizeCompletion(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, fenceMarker) {
		return raw
	}

	firstBreak := strings.Index(trimmed, "\n")
	lastFence := strings.LastIndex(trimmed, fenceMarker)
	if firstBreak == -1 || lastFence <= firstBreak {
		return raw
	}

	return strings.TrimSpace(trimmed[firstBreak+1 : lastFence])
}

// ParseItinerary sanitizes and parses a completion into the typed itinerary
// document. It fails with ErrMalformedCompletion when the payload is not
// parseable or when any of the three required sections is absent; a missing
// section is never defaulted to an empty collection.
func ParseItinerary(raw string) (*response_models.GeneratedItinerary, error) {
	payload := SanitizeCompletion(raw)

	var doc response_models.GeneratedItinerary
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: completion is not valid JSON: %v", utils.ErrMalformedCompletion, err)
	}

	if doc.Transportation == nil {
		return nil, fmt.Errorf("%w: missing required section %q", utils.ErrMalformedCompletion, "transportation")
	}
	if doc.PlacesToVisit == nil {
		return nil, fmt.Errorf("%w: missing required section %q", utils.ErrMalformedCompletion, "places_to_visit")
	}
	if doc.PlacesToStay == nil {
		return nil, fmt.Errorf("%w: missing required section %q", utils.ErrMalformedCompletion, "places_to_stay")
	}

	return &doc, nil
}
