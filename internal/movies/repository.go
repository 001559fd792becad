package movies

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(movie *Movie) error
	GetByID(id uuid.UUID) (*Movie, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Movie, error)
	Delete(id uuid.UUID) error
	GetAll(query MovieListQuery) ([]Movie, int64, error)
	CountFutureShowtimes(movieID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(movie *Movie) error {
	return r.db.Create(movie).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Movie, error) {
	var movie Movie

	// First, get the current movie
	if err := r.db.Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	// Update the movie
	if err := r.db.Model(&movie).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Return updated movie
	if err := r.db.Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	return &movie, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Movie{}).Error
}

func (r *repository) GetAll(query MovieListQuery) ([]Movie, int64, error) {
	var movies []Movie
	var totalCount int64

	// Build the query
	db := r.db.Model(&Movie{})

	// Apply filters
	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if query.Genre != "" {
		db = db.Where("LOWER(genre) = ?", strings.ToLower(query.Genre))
	}

	if query.Active != "" {
		db = db.Where("is_active = ?", query.Active == "true")
	}

	// Count total records
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

	// Get paginated results
	err := db.Order("title ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&movies).Error

	return movies, totalCount, err
}

// CountFutureShowtimes reports how many scheduled screenings still reference
// the movie. The showtimes table is addressed by name to avoid an import
// cycle with the scheduling package.
func (r *repository) CountFutureShowtimes(movieID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("showtimes").
		Where("movie_id = ? AND starts_at > NOW()", movieID).
		Count(&count).Error
	return count, err
}
