package theaters

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cinetix/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// Service dependency injection
	SetCapacityGuard(guard CapacityGuard)
	CreateTheater(req CreateTheaterRequest) (*TheaterResponse, error)
	GetTheaterByID(id uuid.UUID) (*TheaterResponse, error)
	UpdateTheater(id uuid.UUID, req UpdateTheaterRequest) (*TheaterResponse, error)
	DeleteTheater(id uuid.UUID) error
	GetAllTheaters(query TheaterListQuery) (*PaginatedTheaters, error)
	LookupCapacity(theaterID uuid.UUID) (capacity int, isActive bool, err error)
	CapacityReductionAllowed(theaterID uuid.UUID, proposedCapacity int) (*CapacityCheckResponse, error)
}

// CapacityGuard reports whether any showtime's sold count would exceed a
// proposed theater capacity. Implemented by the scheduling package; declared
// here to avoid a circular dependency.
type CapacityGuard interface {
	ExceedsCapacity(theaterID uuid.UUID, proposedCapacity int) (bool, error)
}

type service struct {
	repo          Repository
	capacityGuard CapacityGuard
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCapacityGuard(guard CapacityGuard) {
	s.capacityGuard = guard
}

func (s *service) CreateTheater(req CreateTheaterRequest) (*TheaterResponse, error) {
	theater := &Theater{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		IsActive: true,
	}

	if err := s.repo.Create(theater); err != nil {
		return nil, fmt.Errorf("failed to create theater: %w", err)
	}

	response := theater.ToResponse()
	return &response, nil
}

func (s *service) GetTheaterByID(id uuid.UUID) (*TheaterResponse, error) {
	theater, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("theater", id.String())
		}
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}

	response := theater.ToResponse()
	return &response, nil
}

func (s *service) UpdateTheater(id uuid.UUID, req UpdateTheaterRequest) (*TheaterResponse, error) {
	currentTheater, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("theater", id.String())
		}
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}

	// Build updates map
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Capacity != nil {
		// Shrinking the room must not strand already-sold tickets
		if *req.Capacity < currentTheater.Capacity {
			if s.capacityGuard == nil {
				return nil, errors.New("capacity guard not available")
			}
			exceeds, err := s.capacityGuard.ExceedsCapacity(id, *req.Capacity)
			if err != nil {
				return nil, fmt.Errorf("failed to check sold tickets against proposed capacity: %w", err)
			}
			if exceeds {
				return nil, fmt.Errorf("cannot reduce capacity to %d: %w", *req.Capacity, apperrors.ErrCapacityExceeded)
			}
		}
		updates["capacity"] = *req.Capacity
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	updates["updated_at"] = time.Now().UTC()

	updatedTheater, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update theater: %w", err)
	}

	response := updatedTheater.ToResponse()
	return &response, nil
}

func (s *service) DeleteTheater(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("theater", id.String())
		}
		return fmt.Errorf("failed to get theater: %w", err)
	}

	count, err := s.repo.CountFutureShowtimes(id)
	if err != nil {
		return fmt.Errorf("failed to check scheduled showtimes: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("theater has %d upcoming showtimes: %w", count, apperrors.ErrReferencedBySchedule)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete theater: %w", err)
	}

	return nil
}

func (s *service) GetAllTheaters(query TheaterListQuery) (*PaginatedTheaters, error) {
	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	theaters, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get theaters: %w", err)
	}

	theaterResponses := make([]TheaterResponse, len(theaters))
	for i, theater := range theaters {
		theaterResponses[i] = theater.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedTheaters{
		Theaters:   theaterResponses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// LookupCapacity returns the seat ceiling and active flag for scheduling.
func (s *service) LookupCapacity(theaterID uuid.UUID) (int, bool, error) {
	theater, err := s.repo.GetByID(theaterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, apperrors.NewNotFound("theater", theaterID.String())
		}
		return 0, false, fmt.Errorf("failed to get theater: %w", err)
	}

	return theater.Capacity, theater.IsActive, nil
}

// CapacityReductionAllowed answers whether the theater could shrink to the
// proposed capacity without stranding sold tickets. Read-only and unlocked;
// a reduction racing a purchase is managed by the caller.
func (s *service) CapacityReductionAllowed(theaterID uuid.UUID, proposedCapacity int) (*CapacityCheckResponse, error) {
	theater, err := s.repo.GetByID(theaterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("theater", theaterID.String())
		}
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}

	if s.capacityGuard == nil {
		return nil, errors.New("capacity guard not available")
	}

	exceeds, err := s.capacityGuard.ExceedsCapacity(theaterID, proposedCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to check sold tickets against proposed capacity: %w", err)
	}

	return &CapacityCheckResponse{
		TheaterID:        theaterID.String(),
		CurrentCapacity:  theater.Capacity,
		ProposedCapacity: proposedCapacity,
		Allowed:          !exceeds,
	}, nil
}
