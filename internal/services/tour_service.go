package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"tourway/internal/models/db_models"
	"tourway/internal/models/request_models"
	"tourway/internal/models/response_models"
	"tourway/internal/repositories"
	"tourway/pkg/utils"
)

const (
	// Random UUID collisions are astronomically unlikely; the cap exists so a
	// misbehaving store cannot spin the allocator forever.
	maxIDAllocationAttempts = 5

	imageLookupConcurrency = 5
)

type TourServiceInterface interface {
	CreateTour(ctx context.Context, userID string, req request_models.CreateTourRequest) (*response_models.CreateTourResponse, error)
	GetTourByID(ctx context.Context, tourID string) (*response_models.TourResponse, error)
	GetToursByUserID(ctx context.Context, userID string, page int, pageSize int) ([]response_models.TourResponse, error)
	GetTransportations(ctx context.Context, tourID string) ([]response_models.TransportationResponse, error)
	GetPlacesToVisit(ctx context.Context, tourID string) ([]response_models.PlaceToVisitResponse, error)
	GetPlacesToStay(ctx context.Context, tourID string) ([]response_models.PlaceToStayResponse, error)
	UpdateDayVisits(ctx context.Context, updates []request_models.DayVisitUpdate) error
	UpdateStaySelections(ctx context.Context, updates []request_models.StaySelectionUpdate) error
	SwapTransportation(ctx context.Context, oldID string, newID string) error
}

type TourService struct {
	tourRepo     repositories.TourRepository
	generator    utils.ContentGeneratorInterface
	imageService ImageSearchServiceInterface
}

func NewTourService(
	tourRepo repositories.TourRepository,
	generator utils.ContentGeneratorInterface,
	imageService ImageSearchServiceInterface,
) TourServiceInterface {
	return &TourService{
		tourRepo:     tourRepo,
		generator:    generator,
		imageService: imageService,
	}
}

// CreateTour runs the whole creation pipeline: build prompt, generate, parse,
// allocate an id, enrich with images, persist parent then children. Generation
// and parsing failures abort before anything is written.
func (s *TourService) CreateTour(ctx context.Context, userID string, req request_models.CreateTourRequest) (*response_models.CreateTourResponse, error) {

	creator, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	prompt := BuildTourPrompt(req)

	completion, err := s.generator.GenerateItinerary(ctx, prompt)
	if err != nil {
		return nil, err
	}

	doc, err := ParseItinerary(completion)
	if err != nil {
		return nil, err
	}

	s.enrichWithImages(ctx, doc)

	tour, err := s.persistItinerary(ctx, creator, req, doc)
	if err != nil {
		return nil, err
	}

	return &response_models.CreateTourResponse{
		TourID:    tour.ID.String(),
		Itinerary: doc,
	}, nil
}

// enrichWithImages looks up an image for every place and stay entry with a
// bounded fan-out. Lookups are mutually independent and best-effort, so a
// failed one just leaves the entry without an image.
func (s *TourService) enrichWithImages(ctx context.Context, doc *response_models.GeneratedItinerary) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageLookupConcurrency)

	for i := range doc.PlacesToVisit {
		g.Go(func() error {
			doc.PlacesToVisit[i].ImageURL = s.imageService.SearchImageURL(gctx, doc.PlacesToVisit[i].PlaceName)
			return nil
		})
	}
	for i := range doc.PlacesToStay {
		g.Go(func() error {
			doc.PlacesToStay[i].ImageURL = s.imageService.SearchImageURL(gctx, doc.PlacesToStay[i].PlaceName)
			return nil
		})
	}

	_ = g.Wait()
}

// allocateTourID produces an id absent from the store at the moment it is
// checked. The check and the insert are not atomic; InsertTour reports a
// conflict when the race is lost and the caller re-allocates.
func (s *TourService) allocateTourID(ctx context.Context) (uuid.UUID, error) {
	for attempt := 0; attempt < maxIDAllocationAttempts; attempt++ {
		candidate := uuid.New()

		exists, err := s.tourRepo.ExistsByID(ctx, candidate)
		if err != nil {
			return uuid.Nil, utils.ErrDatabaseError
		}
		if !exists {
			return candidate, nil
		}
	}
	return uuid.Nil, utils.ErrAllocationExhausted
}

// persistItinerary writes the parent tour row, then the three child batches.
// There is no cross-entity transaction: a failed child batch leaves the parent
// behind, and the returned PersistenceError names the phase so the partial
// state is diagnosable.
func (s *TourService) persistItinerary(
	ctx context.Context,
	creator uuid.UUID,
	req request_models.CreateTourRequest,
	doc *response_models.GeneratedItinerary,
) (*db_models.Tour, error) {

	var tour *db_models.Tour
	for attempt := 0; ; attempt++ {
		tourID, err := s.allocateTourID(ctx)
		if err != nil {
			return nil, err
		}

		tour = &db_models.Tour{
			BaseModel:    db_models.BaseModel{ID: tourID},
			Destination:  req.Destination,
			CheckInDate:  req.CheckInDate,
			CheckOutDate: req.CheckOutDate,
			MinBudget:    req.MinBudget,
			MaxBudget:    req.MaxBudget,
			TravelType:   req.TravelType,
			CreatedBy:    creator,
		}

		err = s.tourRepo.InsertTour(ctx, tour)
		if errors.Is(err, utils.ErrIDConflict) && attempt < maxIDAllocationAttempts {
			log.Printf("tour id %s collided on insert, re-allocating", tourID)
			continue
		}
		if err != nil {
			return nil, utils.NewPersistenceError("tour", err)
		}
		break
	}

	transports := make([]db_models.Transportation, 0, len(db_models.TransportModes()))
	for _, mode := range db_models.TransportModes() {
		entry, ok := doc.Transportation[mode]
		if !ok {
			continue
		}
		transports = append(transports, db_models.Transportation{
			TourID:     tour.ID,
			Type:       mode,
			Detail:     entry.Details,
			Price:      entry.Price.Int64(),
			BookingURL: entry.BookingURL,
			IsSelected: entry.IsSelectedTransport,
		})
	}
	if err := s.tourRepo.InsertTransportations(ctx, transports); err != nil {
		return nil, utils.NewPersistenceError("transportation", err)
	}

	visits := make([]db_models.PlaceToVisit, 0, len(doc.PlacesToVisit))
	for _, p := range doc.PlacesToVisit {
		visits = append(visits, db_models.PlaceToVisit{
			TourID:          tour.ID,
			Name:            p.PlaceName,
			Detail:          p.Details,
			ImageURL:        p.ImageURL,
			TicketPrice:     p.TicketPrice.Int64(),
			BestTimeToVisit: p.BestTimeToVisit,
			Rating:          p.Rating.Float32(),
			TotalRating:     p.TotalUserRating.Int64(),
		})
	}
	if err := s.tourRepo.InsertPlacesToVisit(ctx, visits); err != nil {
		return nil, utils.NewPersistenceError("places_to_visit", err)
	}

	stays := make([]db_models.PlaceToStay, 0, len(doc.PlacesToStay))
	for _, p := range doc.PlacesToStay {
		stays = append(stays, db_models.PlaceToStay{
			TourID:      tour.ID,
			Name:        p.PlaceName,
			Detail:      p.Details,
			ImageURL:    p.ImageURL,
			Price:       p.Price.Int64(),
			Rating:      p.Rating.Float32(),
			TotalRating: p.TotalUserRating.Int64(),
		})
	}
	if err := s.tourRepo.InsertPlacesToStay(ctx, stays); err != nil {
		return nil, utils.NewPersistenceError("places_to_stay", err)
	}

	return tour, nil
}

func (s *TourService) GetTourByID(ctx context.Context, tourID string) (*response_models.TourResponse, error) {
	tour, err := s.tourRepo.GetTourByID(ctx, tourID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tour == nil {
		return nil, utils.ErrTourNotFound
	}

	out := buildTourResponse(tour)
	return &out, nil
}

func (s *TourService) GetToursByUserID(ctx context.Context, userID string, page int, pageSize int) ([]response_models.TourResponse, error) {
	tours, err := s.tourRepo.GetToursByCreator(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TourResponse, 0, len(tours))
	for i := range tours {
		out = append(out, buildTourResponse(&tours[i]))
	}
	return out, nil
}

func (s *TourService) GetTransportations(ctx context.Context, tourID string) ([]response_models.TransportationResponse, error) {
	rows, err := s.tourRepo.GetTransportationsByTourID(ctx, tourID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TransportationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, response_models.TransportationResponse{
			ID:         r.ID.String(),
			TourID:     r.TourID.String(),
			Type:       r.Type,
			Detail:     r.Detail,
			Price:      r.Price,
			BookingURL: r.BookingURL,
			IsSelected: r.IsSelected,
		})
	}
	return out, nil
}

func (s *TourService) GetPlacesToVisit(ctx context.Context, tourID string) ([]response_models.PlaceToVisitResponse, error) {
	rows, err := s.tourRepo.GetPlacesToVisitByTourID(ctx, tourID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PlaceToVisitResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, response_models.PlaceToVisitResponse{
			ID:              r.ID.String(),
			TourID:          r.TourID.String(),
			Name:            r.Name,
			Detail:          r.Detail,
			ImageURL:        r.ImageURL,
			TicketPrice:     r.TicketPrice,
			BestTimeToVisit: r.BestTimeToVisit,
			DayVisit:        r.DayVisit,
			Rating:          r.Rating,
			TotalRating:     r.TotalRating,
		})
	}
	return out, nil
}

func (s *TourService) GetPlacesToStay(ctx context.Context, tourID string) ([]response_models.PlaceToStayResponse, error) {
	rows, err := s.tourRepo.GetPlacesToStayByTourID(ctx, tourID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PlaceToStayResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, response_models.PlaceToStayResponse{
			ID:          r.ID.String(),
			TourID:      r.TourID.String(),
			Name:        r.Name,
			Detail:      r.Detail,
			ImageURL:    r.ImageURL,
			Price:       r.Price,
			Rating:      r.Rating,
			TotalRating: r.TotalRating,
			IsSelected:  r.IsSelected,
		})
	}
	return out, nil
}

// UpdateDayVisits assigns places to days, one read-modify-write per pair. A
// target id that does not resolve reports ErrNotFound instead of being
// silently skipped.
func (s *TourService) UpdateDayVisits(ctx context.Context, updates []request_models.DayVisitUpdate) error {
	for _, u := range updates {
		row, err := s.tourRepo.GetPlaceToVisitByID(ctx, u.PlaceID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if row == nil {
			return fmt.Errorf("%w: place to visit %s", utils.ErrNotFound, u.PlaceID)
		}

		row.DayVisit = u.DayVisit
		if err := s.tourRepo.SavePlaceToVisit(ctx, row); err != nil {
			return utils.ErrDatabaseError
		}
	}
	return nil
}

func (s *TourService) UpdateStaySelections(ctx context.Context, updates []request_models.StaySelectionUpdate) error {
	for _, u := range updates {
		row, err := s.tourRepo.GetPlaceToStayByID(ctx, u.PlaceID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if row == nil {
			return fmt.Errorf("%w: place to stay %s", utils.ErrNotFound, u.PlaceID)
		}

		row.IsSelected = u.IsSelected
		if err := s.tourRepo.SavePlaceToStay(ctx, row); err != nil {
			return utils.ErrDatabaseError
		}
	}
	return nil
}

// SwapTransportation moves the selected flag from the old row to the new one.
// The two writes are independent; a failure after the first leaves no row
// selected, which the phase in the returned error makes diagnosable.
func (s *TourService) SwapTransportation(ctx context.Context, oldID string, newID string) error {
	oldRow, err := s.tourRepo.GetTransportationByID(ctx, oldID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if oldRow == nil {
		return fmt.Errorf("%w: transportation %s", utils.ErrNotFound, oldID)
	}

	newRow, err := s.tourRepo.GetTransportationByID(ctx, newID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if newRow == nil {
		return fmt.Errorf("%w: transportation %s", utils.ErrNotFound, newID)
	}

	oldRow.IsSelected = false
	if err := s.tourRepo.SaveTransportation(ctx, oldRow); err != nil {
		return utils.NewPersistenceError("transportation_deselect", err)
	}

	newRow.IsSelected = true
	if err := s.tourRepo.SaveTransportation(ctx, newRow); err != nil {
		return utils.NewPersistenceError("transportation_select", err)
	}

	return nil
}

func buildTourResponse(tour *db_models.Tour) response_models.TourResponse {
	return response_models.TourResponse{
		ID:           tour.ID.String(),
		Destination:  tour.Destination,
		CheckInDate:  tour.CheckInDate,
		CheckOutDate: tour.CheckOutDate,
		MinBudget:    tour.MinBudget,
		MaxBudget:    tour.MaxBudget,
		TravelType:   tour.TravelType,
		CreatedBy:    tour.CreatedBy.String(),
		CreatedAt:    utils.FormatRFC3339VN(utils.FromUnixSecondsVN(tour.CreatedAt)),
	}
}
