package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "tourway/internal/models/db_models"
	"tourway/internal/models/request_models"
	"tourway/pkg/utils"
)

type fakeGenerator struct {
	out string
	err error
}

func (f *fakeGenerator) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	return f.out, f.err
}

func (f *fakeGenerator) Close() error { return nil }

type fakeImageSearch struct {
	fail bool
}

func (f *fakeImageSearch) SearchImageURL(ctx context.Context, placeName string) string {
	if f.fail {
		return ""
	}
	return "https://img.test/" + placeName
}

// fakeTourRepo is an in-memory stand-in for the Postgres-backed repository.
type fakeTourRepo struct {
	reservedChecks  int // existence checks that report the candidate as taken
	conflictInserts int // parent inserts that report a pk conflict
	existsCalls     int

	failTransports bool
	failVisits     bool
	failStays      bool

	tours      map[string]*dbm.Tour
	transports []dbm.Transportation
	visits     []dbm.PlaceToVisit
	stays      []dbm.PlaceToStay
}

func newFakeTourRepo() *fakeTourRepo {
	return &fakeTourRepo{tours: make(map[string]*dbm.Tour)}
}

func (f *fakeTourRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	f.existsCalls++
	if f.reservedChecks > 0 {
		f.reservedChecks--
		return true, nil
	}
	_, ok := f.tours[id.String()]
	return ok, nil
}

func (f *fakeTourRepo) InsertTour(ctx context.Context, tour *dbm.Tour) error {
	if f.conflictInserts > 0 {
		f.conflictInserts--
		return utils.ErrIDConflict
	}
	f.tours[tour.ID.String()] = tour
	return nil
}

func (f *fakeTourRepo) InsertTransportations(ctx context.Context, rows []dbm.Transportation) error {
	if f.failTransports {
		return errors.New("connection reset")
	}
	for i := range rows {
		rows[i].ID = uuid.New()
	}
	f.transports = append(f.transports, rows...)
	return nil
}

func (f *fakeTourRepo) InsertPlacesToVisit(ctx context.Context, rows []dbm.PlaceToVisit) error {
	if f.failVisits {
		return errors.New("connection reset")
	}
	for i := range rows {
		rows[i].ID = uuid.New()
	}
	f.visits = append(f.visits, rows...)
	return nil
}

func (f *fakeTourRepo) InsertPlacesToStay(ctx context.Context, rows []dbm.PlaceToStay) error {
	if f.failStays {
		return errors.New("connection reset")
	}
	for i := range rows {
		rows[i].ID = uuid.New()
	}
	f.stays = append(f.stays, rows...)
	return nil
}

func (f *fakeTourRepo) GetTourByID(ctx context.Context, tourID string) (*dbm.Tour, error) {
	return f.tours[tourID], nil
}

func (f *fakeTourRepo) GetToursByCreator(ctx context.Context, userID string, page int, pageSize int) ([]dbm.Tour, error) {
	var out []dbm.Tour
	for _, t := range f.tours {
		if t.CreatedBy.String() == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTourRepo) GetTransportationsByTourID(ctx context.Context, tourID string) ([]dbm.Transportation, error) {
	var out []dbm.Transportation
	for _, r := range f.transports {
		if r.TourID.String() == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTourRepo) GetPlacesToVisitByTourID(ctx context.Context, tourID string) ([]dbm.PlaceToVisit, error) {
	var out []dbm.PlaceToVisit
	for _, r := range f.visits {
		if r.TourID.String() == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTourRepo) GetPlacesToStayByTourID(ctx context.Context, tourID string) ([]dbm.PlaceToStay, error) {
	var out []dbm.PlaceToStay
	for _, r := range f.stays {
		if r.TourID.String() == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTourRepo) GetPlaceToVisitByID(ctx context.Context, id string) (*dbm.PlaceToVisit, error) {
	for i := range f.visits {
		if f.visits[i].ID.String() == id {
			return &f.visits[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTourRepo) SavePlaceToVisit(ctx context.Context, row *dbm.PlaceToVisit) error {
	for i := range f.visits {
		if f.visits[i].ID == row.ID {
			f.visits[i] = *row
			return nil
		}
	}
	return errors.New("row vanished")
}

func (f *fakeTourRepo) GetPlaceToStayByID(ctx context.Context, id string) (*dbm.PlaceToStay, error) {
	for i := range f.stays {
		if f.stays[i].ID.String() == id {
			return &f.stays[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTourRepo) SavePlaceToStay(ctx context.Context, row *dbm.PlaceToStay) error {
	for i := range f.stays {
		if f.stays[i].ID == row.ID {
			f.stays[i] = *row
			return nil
		}
	}
	return errors.New("row vanished")
}

func (f *fakeTourRepo) GetTransportationByID(ctx context.Context, id string) (*dbm.Transportation, error) {
	for i := range f.transports {
		if f.transports[i].ID.String() == id {
			return &f.transports[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTourRepo) SaveTransportation(ctx context.Context, row *dbm.Transportation) error {
	for i := range f.transports {
		if f.transports[i].ID == row.ID {
			f.transports[i] = *row
			return nil
		}
	}
	return errors.New("row vanished")
}

func validCompletionJSON(t *testing.T) string {
	t.Helper()

	transportation := map[string]any{}
	for _, mode := range dbm.TransportModes() {
		transportation[mode] = map[string]any{
			"details":             "di chuyển bằng " + mode,
			"price":               450000,
			"booking_url":         "https://booking.example.com/" + mode,
			"isSelectedTransport": false,
		}
	}

	visits := make([]map[string]any, 0, PlacesToVisitCount)
	for i := 0; i < PlacesToVisitCount; i++ {
		visits = append(visits, map[string]any{
			"placeName":          fmt.Sprintf("Điểm tham quan %d", i+1),
			"details":            "mô tả ngắn",
			"ticket_price":       50000,
			"best_time_to_visit": "Buổi sáng",
			"rating":             "4.4",
			"total_user_rating":  "65000",
		})
	}

	stays := make([]map[string]any, 0, PlacesToStayCount)
	for i := 0; i < PlacesToStayCount; i++ {
		stays = append(stays, map[string]any{
			"placeName":         fmt.Sprintf("Khách sạn %d", i+1),
			"details":           "mô tả ngắn",
			"price":             500000,
			"rating":            4.2,
			"total_user_rating": 999,
		})
	}

	payload, err := json.Marshal(map[string]any{
		"transportation":  transportation,
		"places_to_visit": visits,
		"places_to_stay":  stays,
	})
	require.NoError(t, err)
	return string(payload)
}

func daLatRequest() request_models.CreateTourRequest {
	return request_models.CreateTourRequest{
		Destination:  "Đà Lạt",
		CheckInDate:  "2025-05-01",
		CheckOutDate: "2025-05-04",
		MinBudget:    500000,
		MaxBudget:    3000000,
		TravelType:   "family",
	}
}

func TestCreateTourPersistsFullItinerary(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{out: "```json\n" + validCompletionJSON(t) + "\n```"}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	userID := uuid.New().String()
	resp, err := svc.CreateTour(context.Background(), userID, daLatRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	tourID, err := uuid.Parse(resp.TourID)
	require.NoError(t, err)

	tour := repo.tours[tourID.String()]
	require.NotNil(t, tour)
	assert.Equal(t, "Đà Lạt", tour.Destination)
	assert.Equal(t, userID, tour.CreatedBy.String())

	assert.Len(t, repo.transports, len(dbm.TransportModes()))
	assert.Len(t, repo.visits, PlacesToVisitCount)
	assert.Len(t, repo.stays, PlacesToStayCount)

	for _, r := range repo.transports {
		assert.Equal(t, tourID, r.TourID)
	}
	for _, r := range repo.visits {
		assert.Equal(t, tourID, r.TourID)
		assert.Equal(t, "https://img.test/"+r.Name, r.ImageURL)
		assert.InDelta(t, 4.4, float64(r.Rating), 0.001)
		assert.EqualValues(t, 65000, r.TotalRating)
	}
	for _, r := range repo.stays {
		assert.Equal(t, tourID, r.TourID)
		assert.Equal(t, "https://img.test/"+r.Name, r.ImageURL)
	}

	require.NotNil(t, resp.Itinerary)
	assert.Len(t, resp.Itinerary.PlacesToVisit, PlacesToVisitCount)
}

func TestCreateTourDegradesToNoImageWhenLookupFails(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{fail: true})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.NoError(t, err)

	for _, r := range repo.visits {
		assert.Empty(t, r.ImageURL)
	}
	for _, r := range repo.stays {
		assert.Empty(t, r.ImageURL)
	}
}

func TestCreateTourFailsWhenStaySectionMissing(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{out: `{"transportation": {}, "places_to_visit": []}`}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMalformedCompletion)
	assert.Empty(t, repo.tours, "no tour row may be persisted for a malformed completion")
}

func TestCreateTourPropagatesGeneratorFailure(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{err: fmt.Errorf("%w: gemini: 503", utils.ErrUpstreamUnavailable)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
	assert.Empty(t, repo.tours)
}

func TestAllocatorSkipsReservedCandidates(t *testing.T) {
	repo := newFakeTourRepo()
	repo.reservedChecks = 3
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	resp, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	// 3 reserved candidates plus the one that was accepted
	assert.Equal(t, 4, repo.existsCalls)
}

func TestAllocatorFailsWhenCandidateSpaceLooksFull(t *testing.T) {
	repo := newFakeTourRepo()
	repo.reservedChecks = 100
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrAllocationExhausted)
	assert.Empty(t, repo.tours)
}

func TestAllocatorRetriesOnInsertConflict(t *testing.T) {
	repo := newFakeTourRepo()
	repo.conflictInserts = 1
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	resp, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.NoError(t, err)
	assert.Len(t, repo.tours, 1)
	assert.Contains(t, repo.tours, resp.TourID)
}

func TestCreateTourReportsFailedWritePhase(t *testing.T) {
	repo := newFakeTourRepo()
	repo.failVisits = true
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrPersistenceFailure)

	var perr *utils.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "places_to_visit", perr.Phase)

	// The parent row is left behind on purpose so the failure is diagnosable.
	assert.Len(t, repo.tours, 1)
}

func TestUpdateDayVisitsAssignsDays(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.NoError(t, err)

	updates := []request_models.DayVisitUpdate{
		{PlaceID: repo.visits[0].ID.String(), DayVisit: 1},
		{PlaceID: repo.visits[1].ID.String(), DayVisit: 2},
	}
	require.NoError(t, svc.UpdateDayVisits(context.Background(), updates))

	assert.Equal(t, 1, repo.visits[0].DayVisit)
	assert.Equal(t, 2, repo.visits[1].DayVisit)
}

func TestUpdateDayVisitsReportsMissingPlace(t *testing.T) {
	repo := newFakeTourRepo()
	svc := NewTourService(repo, &fakeGenerator{}, &fakeImageSearch{})

	err := svc.UpdateDayVisits(context.Background(), []request_models.DayVisitUpdate{
		{PlaceID: uuid.New().String(), DayVisit: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUpdateStaySelections(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStaySelections(context.Background(), []request_models.StaySelectionUpdate{
		{PlaceID: repo.stays[0].ID.String(), IsSelected: true},
	}))
	assert.True(t, repo.stays[0].IsSelected)
}

func TestSwapTransportationMovesSelection(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.NoError(t, err)

	oldRow := &repo.transports[0]
	newRow := &repo.transports[1]
	oldRow.IsSelected = true

	require.NoError(t, svc.SwapTransportation(context.Background(), oldRow.ID.String(), newRow.ID.String()))

	assert.False(t, repo.transports[0].IsSelected)
	assert.True(t, repo.transports[1].IsSelected)
}

func TestSwapTransportationReportsMissingRow(t *testing.T) {
	repo := newFakeTourRepo()
	gen := &fakeGenerator{out: validCompletionJSON(t)}
	svc := NewTourService(repo, gen, &fakeImageSearch{})

	_, err := svc.CreateTour(context.Background(), uuid.New().String(), daLatRequest())
	require.NoError(t, err)

	err = svc.SwapTransportation(context.Background(), uuid.New().String(), repo.transports[0].ID.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// Nothing was written: the existing selection state is untouched.
	for _, r := range repo.transports {
		assert.False(t, r.IsSelected)
	}
}
