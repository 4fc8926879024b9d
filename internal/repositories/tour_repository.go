package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tourway/internal/models/db_models"
	"tourway/pkg/utils"
)

type TourRepository interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	InsertTour(ctx context.Context, tour *dbm.Tour) error
	InsertTransportations(ctx context.Context, rows []dbm.Transportation) error
	InsertPlacesToVisit(ctx context.Context, rows []dbm.PlaceToVisit) error
	InsertPlacesToStay(ctx context.Context, rows []dbm.PlaceToStay) error

	GetTourByID(ctx context.Context, tourID string) (*dbm.Tour, error)
	GetToursByCreator(ctx context.Context, userID string, page int, pageSize int) ([]dbm.Tour, error)
	GetTransportationsByTourID(ctx context.Context, tourID string) ([]dbm.Transportation, error)
	GetPlacesToVisitByTourID(ctx context.Context, tourID string) ([]dbm.PlaceToVisit, error)
	GetPlacesToStayByTourID(ctx context.Context, tourID string) ([]dbm.PlaceToStay, error)

	GetPlaceToVisitByID(ctx context.Context, id string) (*dbm.PlaceToVisit, error)
	SavePlaceToVisit(ctx context.Context, row *dbm.PlaceToVisit) error
	GetPlaceToStayByID(ctx context.Context, id string) (*dbm.PlaceToStay, error)
	SavePlaceToStay(ctx context.Context, row *dbm.PlaceToStay) error
	GetTransportationByID(ctx context.Context, id string) (*dbm.Transportation, error)
	SaveTransportation(ctx context.Context, row *dbm.Transportation) error
}

type tourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Tour{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tourRepository) InsertTour(ctx context.Context, tour *dbm.Tour) error {
	err := r.db.WithContext(ctx).Create(tour).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the existence-check/insert race; the pk constraint is the backstop.
		return utils.ErrIDConflict
	}
	return err
}

func (r *tourRepository) InsertTransportations(ctx context.Context, rows []dbm.Transportation) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *tourRepository) InsertPlacesToVisit(ctx context.Context, rows []dbm.PlaceToVisit) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *tourRepository) InsertPlacesToStay(ctx context.Context, rows []dbm.PlaceToStay) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *tourRepository) GetTourByID(ctx context.Context, tourID string) (*dbm.Tour, error) {
	var tour dbm.Tour
	err := r.db.WithContext(ctx).
		Where("id = ?", tourID).
		First(&tour).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &tour, nil
}

func (r *tourRepository) GetToursByCreator(ctx context.Context, userID string, page int, pageSize int) ([]dbm.Tour, error) {
	var tours []dbm.Tour
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&tours).Error

	if err != nil {
		return nil, err
	}

	return tours, nil
}

func (r *tourRepository) GetTransportationsByTourID(ctx context.Context, tourID string) ([]dbm.Transportation, error) {
	var rows []dbm.Transportation
	err := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourRepository) GetPlacesToVisitByTourID(ctx context.Context, tourID string) ([]dbm.PlaceToVisit, error) {
	var rows []dbm.PlaceToVisit
	err := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourRepository) GetPlacesToStayByTourID(ctx context.Context, tourID string) ([]dbm.PlaceToStay, error) {
	var rows []dbm.PlaceToStay
	err := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourRepository) GetPlaceToVisitByID(ctx context.Context, id string) (*dbm.PlaceToVisit, error) {
	var row dbm.PlaceToVisit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *tourRepository) SavePlaceToVisit(ctx context.Context, row *dbm.PlaceToVisit) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *tourRepository) GetPlaceToStayByID(ctx context.Context, id string) (*dbm.PlaceToStay, error) {
	var row dbm.PlaceToStay
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *tourRepository) SavePlaceToStay(ctx context.Context, row *dbm.PlaceToStay) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *tourRepository) GetTransportationByID(ctx context.Context, id string) (*dbm.Transportation, error) {
	var row dbm.Transportation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *tourRepository) SaveTransportation(ctx context.Context, row *dbm.Transportation) error {
	return r.db.WithContext(ctx).Save(row).Error
}
