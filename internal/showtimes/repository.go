package showtimes

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(showtime *Showtime) error
	GetByID(id uuid.UUID) (*Showtime, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Showtime, error)
	Delete(id uuid.UUID) error
	GetAll(query ShowtimeListQuery) ([]Showtime, int64, error)
	FindConflict(theaterID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) (*Showtime, error)
	MaxSoldTickets(theaterID uuid.UUID) (int, error)
	OccupiedSeats(showtimeID uuid.UUID) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(showtime *Showtime) error {
	return r.db.Create(showtime).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.Where("id = ?", id).First(&showtime).Error
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Showtime, error) {
	var showtime Showtime

	if err := r.db.Where("id = ?", id).First(&showtime).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&showtime).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&showtime).Error; err != nil {
		return nil, err
	}

	return &showtime, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Cancelled tickets still reference the row. Purchased tickets
		// block deletion at the service layer before we get here.
		if err := tx.Exec("DELETE FROM tickets WHERE showtime_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete tickets for showtime: %w", err)
		}

		if err := tx.Where("id = ?", id).Delete(&Showtime{}).Error; err != nil {
			return fmt.Errorf("failed to delete showtime: %w", err)
		}

		return nil
	})
}

func (r *repository) GetAll(query ShowtimeListQuery) ([]Showtime, int64, error) {
	var results []Showtime
	var totalCount int64

	db := r.db.Model(&Showtime{})

	if query.MovieID != "" {
		db = db.Where("movie_id = ?", query.MovieID)
	}

	if query.TheaterID != "" {
		db = db.Where("theater_id = ?", query.TheaterID)
	}

	if query.Upcoming {
		db = db.Where("starts_at > NOW()")
	}

	// Date filters
	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("starts_at >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			// Add 24 hours to include the entire day
			dateTo = dateTo.Add(24 * time.Hour)
			db = db.Where("starts_at < ?", dateTo)
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("starts_at ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error

	return results, totalCount, err
}

// FindConflict returns the earliest showtime in the theater whose
// half-open interval intersects [startsAt, endsAt), or nil when the slot
// is free. Two screenings where one ends exactly when the other starts
// do not conflict. excludeID skips the showtime being rescheduled.
func (r *repository) FindConflict(theaterID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) (*Showtime, error) {
	var conflict Showtime

	db := r.db.Where("theater_id = ? AND starts_at < ? AND ends_at > ?", theaterID, endsAt, startsAt)
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	err := db.Order("starts_at ASC").First(&conflict).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &conflict, nil
}

// MaxSoldTickets returns the highest sold counter across all showtimes
// of the theater, 0 when the theater has no showtimes.
func (r *repository) MaxSoldTickets(theaterID uuid.UUID) (int, error) {
	var result struct {
		MaxSold int `json:"max_sold"`
	}

	err := r.db.Model(&Showtime{}).
		Select("COALESCE(MAX(sold_tickets), 0) as max_sold").
		Where("theater_id = ?", theaterID).
		Scan(&result).Error

	return result.MaxSold, err
}

// OccupiedSeats lists the seat labels currently held by purchased
// tickets. Cancelled tickets free their seat and are not listed.
func (r *repository) OccupiedSeats(showtimeID uuid.UUID) ([]string, error) {
	var seats []string

	err := r.db.Table("tickets").
		Where("showtime_id = ? AND status = ?", showtimeID, "PURCHASED").
		Order("seat_number ASC").
		Pluck("seat_number", &seats).Error

	return seats, err
}
