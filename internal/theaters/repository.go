package theaters

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(theater *Theater) error
	GetByID(id uuid.UUID) (*Theater, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Theater, error)
	Delete(id uuid.UUID) error
	GetAll(query TheaterListQuery) ([]Theater, int64, error)
	CountFutureShowtimes(theaterID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(theater *Theater) error {
	return r.db.Create(theater).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Theater, error) {
	var theater Theater
	err := r.db.Where("id = ?", id).First(&theater).Error
	if err != nil {
		return nil, err
	}
	return &theater, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Theater, error) {
	var theater Theater

	// First, get the current theater
	if err := r.db.Where("id = ?", id).First(&theater).Error; err != nil {
		return nil, err
	}

	// Update the theater
	if err := r.db.Model(&theater).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Return updated theater
	if err := r.db.Where("id = ?", id).First(&theater).Error; err != nil {
		return nil, err
	}

	return &theater, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Theater{}).Error
}

func (r *repository) GetAll(query TheaterListQuery) ([]Theater, int64, error) {
	var theaters []Theater
	var totalCount int64

	// Build the query
	db := r.db.Model(&Theater{})

	// Apply filters
	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", searchTerm, searchTerm)
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
	err := db.Order("name ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&theaters).Error

	return theaters, totalCount, err
}

// CountFutureShowtimes reports how many scheduled screenings still use the
// theater. Addressed by table name to avoid an import cycle.
func (r *repository) CountFutureShowtimes(theaterID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("showtimes").
		Where("theater_id = ? AND starts_at > NOW()", theaterID).
		Count(&count).Error
	return count, err
}
