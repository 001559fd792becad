package showtimes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"cinetix/internal/notifications"
	"cinetix/internal/shared/apperrors"
	"cinetix/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// Service dependency injection
	SetMovieCatalog(catalog MovieCatalog)
	SetTheaterDirectory(directory TheaterDirectory)
	SetEventProducer(producer notifications.Producer)
	CreateShowtime(req CreateShowtimeRequest) (*ShowtimeResponse, error)
	GetShowtimeByID(id uuid.UUID) (*ShowtimeResponse, error)
	UpdateShowtime(id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error)
	DeleteShowtime(id uuid.UUID) error
	GetAllShowtimes(query ShowtimeListQuery) (*PaginatedShowtimes, error)
	GetAvailability(id uuid.UUID) (*AvailabilityResponse, error)
	GetOccupiedSeats(id uuid.UUID) (*OccupiedSeatsResponse, error)
	ExceedsCapacity(theaterID uuid.UUID, proposedCapacity int) (bool, error)
}

// MovieCatalog provides the running time that every end derivation uses.
// Declared here to avoid a circular dependency.
type MovieCatalog interface {
	LookupDuration(movieID uuid.UUID) (time.Duration, error)
	GetMovieByID(id uuid.UUID) (*MovieResponse, error)
}

// TheaterDirectory provides capacity and active state for scheduling
// checks. Declared here to avoid a circular dependency.
type TheaterDirectory interface {
	LookupCapacity(theaterID uuid.UUID) (capacity int, isActive bool, err error)
	GetTheaterByID(id uuid.UUID) (*TheaterResponse, error)
}

type service struct {
	repo             Repository
	log              *logger.Logger
	movieCatalog     MovieCatalog
	theaterDirectory TheaterDirectory
	producer         notifications.Producer
	now              func() time.Time
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) SetMovieCatalog(catalog MovieCatalog) {
	s.movieCatalog = catalog
}

func (s *service) SetTheaterDirectory(directory TheaterDirectory) {
	s.theaterDirectory = directory
}

func (s *service) SetEventProducer(producer notifications.Producer) {
	s.producer = producer
}

func (s *service) CreateShowtime(req CreateShowtimeRequest) (*ShowtimeResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID: %w", err)
	}

	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID: %w", err)
	}

	startsAt := req.StartsAt.UTC()
	if !startsAt.After(s.now()) {
		return nil, apperrors.ErrPastDate
	}

	if s.movieCatalog == nil {
		return nil, errors.New("movie catalog not available")
	}
	duration, err := s.movieCatalog.LookupDuration(movieID)
	if err != nil {
		return nil, err
	}

	if s.theaterDirectory == nil {
		return nil, errors.New("theater directory not available")
	}
	_, active, err := s.theaterDirectory.LookupCapacity(theaterID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.ErrTheaterInactive
	}

	// The end is derived from the movie's running time, never from the
	// request.
	endsAt := startsAt.Add(duration)

	conflict, err := s.repo.FindConflict(theaterID, startsAt, endsAt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check schedule: %w", err)
	}
	if conflict != nil {
		return nil, fmt.Errorf("overlaps showtime %s in the same theater: %w", conflict.ID, apperrors.ErrSchedulingConflict)
	}

	showtime := &Showtime{
		MovieID:   movieID,
		TheaterID: theaterID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Price:     req.Price,
	}

	if err := s.repo.Create(showtime); err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	s.log.LogShowtimeScheduled(context.Background(), showtime.ID.String(), movieID.String(), theaterID.String())
	s.publishShowtimeEvent(notifications.EventShowtimeCreated, showtime)

	response := showtime.ToResponse()
	s.populateRefs(&response)
	return &response, nil
}

func (s *service) GetShowtimeByID(id uuid.UUID) (*ShowtimeResponse, error) {
	showtime, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("showtime", id.String())
		}
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}

	response := showtime.ToResponse()
	s.populateRefs(&response)
	return &response, nil
}

func (s *service) UpdateShowtime(id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("showtime", id.String())
		}
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}

	// A screening that has begun is frozen
	if current.HasStarted(s.now()) {
		return nil, apperrors.ErrAlreadyStarted
	}

	movieID := current.MovieID
	if req.MovieID != nil {
		movieID, err = uuid.Parse(*req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie ID: %w", err)
		}
	}

	theaterID := current.TheaterID
	if req.TheaterID != nil {
		theaterID, err = uuid.Parse(*req.TheaterID)
		if err != nil {
			return nil, fmt.Errorf("invalid theater ID: %w", err)
		}
	}

	startsAt := current.StartsAt
	if req.StartsAt != nil {
		startsAt = req.StartsAt.UTC()
	}

	updates := make(map[string]interface{})

	rescheduled := req.MovieID != nil || req.TheaterID != nil || req.StartsAt != nil
	if rescheduled {
		if !startsAt.After(s.now()) {
			return nil, apperrors.ErrPastDate
		}

		if s.movieCatalog == nil {
			return nil, errors.New("movie catalog not available")
		}
		duration, err := s.movieCatalog.LookupDuration(movieID)
		if err != nil {
			return nil, err
		}
		endsAt := startsAt.Add(duration)

		if req.TheaterID != nil && theaterID != current.TheaterID {
			if s.theaterDirectory == nil {
				return nil, errors.New("theater directory not available")
			}
			capacity, active, err := s.theaterDirectory.LookupCapacity(theaterID)
			if err != nil {
				return nil, err
			}
			if !active {
				return nil, apperrors.ErrTheaterInactive
			}
			// Sold tickets must still fit in the destination theater
			if current.SoldTickets > capacity {
				return nil, fmt.Errorf("%d tickets already sold: %w", current.SoldTickets, apperrors.ErrCapacityExceeded)
			}
		}

		conflict, err := s.repo.FindConflict(theaterID, startsAt, endsAt, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to check schedule: %w", err)
		}
		if conflict != nil {
			return nil, fmt.Errorf("overlaps showtime %s in the same theater: %w", conflict.ID, apperrors.ErrSchedulingConflict)
		}

		updates["movie_id"] = movieID
		updates["theater_id"] = theaterID
		updates["starts_at"] = startsAt
		updates["ends_at"] = endsAt
	}

	if req.Price != nil {
		updates["price"] = *req.Price
	}

	updates["updated_at"] = s.now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update showtime: %w", err)
	}

	s.publishShowtimeEvent(notifications.EventShowtimeUpdated, updated)

	response := updated.ToResponse()
	s.populateRefs(&response)
	return &response, nil
}

func (s *service) DeleteShowtime(id uuid.UUID) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("showtime", id.String())
		}
		return fmt.Errorf("failed to get showtime: %w", err)
	}

	if current.SoldTickets > 0 {
		return fmt.Errorf("%d tickets sold: %w", current.SoldTickets, apperrors.ErrShowtimeHasSales)
	}

	if current.HasStarted(s.now()) {
		return apperrors.ErrAlreadyStarted
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete showtime: %w", err)
	}

	s.log.LogShowtimeDeleted(context.Background(), current.ID.String(), current.TheaterID.String())
	s.publishShowtimeEvent(notifications.EventShowtimeDeleted, current)

	return nil
}

func (s *service) GetAllShowtimes(query ShowtimeListQuery) (*PaginatedShowtimes, error) {
	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	results, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get showtimes: %w", err)
	}

	responses := make([]ShowtimeResponse, len(results))
	for i, showtime := range results {
		response := showtime.ToResponse()
		s.populateRefs(&response)
		responses[i] = response
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedShowtimes{
		Showtimes:  responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetAvailability projects the current seat counts without taking any
// lock. The purchase path re-reads everything under the row lock, so a
// stale projection can never oversell.
func (s *service) GetAvailability(id uuid.UUID) (*AvailabilityResponse, error) {
	showtime, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("showtime", id.String())
		}
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}

	if s.theaterDirectory == nil {
		return nil, errors.New("theater directory not available")
	}
	capacity, _, err := s.theaterDirectory.LookupCapacity(showtime.TheaterID)
	if err != nil {
		return nil, err
	}

	available := capacity - showtime.SoldTickets
	if available < 0 {
		available = 0
	}

	return &AvailabilityResponse{
		ShowtimeID: id.String(),
		Capacity:   capacity,
		Sold:       showtime.SoldTickets,
		Available:  available,
		SoldOut:    showtime.SoldTickets >= capacity,
	}, nil
}

func (s *service) GetOccupiedSeats(id uuid.UUID) (*OccupiedSeatsResponse, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("showtime", id.String())
		}
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}

	seats, err := s.repo.OccupiedSeats(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupied seats: %w", err)
	}
	if seats == nil {
		seats = []string{}
	}

	return &OccupiedSeatsResponse{
		ShowtimeID: id.String(),
		Seats:      seats,
	}, nil
}

// ExceedsCapacity reports whether any showtime of the theater has sold
// more tickets than the proposed capacity would hold. Read-only; the
// theater service decides what to do with the answer.
func (s *service) ExceedsCapacity(theaterID uuid.UUID, proposedCapacity int) (bool, error) {
	maxSold, err := s.repo.MaxSoldTickets(theaterID)
	if err != nil {
		return false, fmt.Errorf("failed to read sold ticket counts: %w", err)
	}

	return maxSold > proposedCapacity, nil
}

// populateRefs fills in movie and theater summaries. They are display
// data, so lookup failures leave them unset instead of failing the
// request.
func (s *service) populateRefs(response *ShowtimeResponse) {
	if s.movieCatalog != nil {
		if movieID, err := uuid.Parse(response.MovieID); err == nil {
			if movie, err := s.movieCatalog.GetMovieByID(movieID); err == nil {
				response.Movie = movie
			}
		}
	}

	if s.theaterDirectory != nil {
		if theaterID, err := uuid.Parse(response.TheaterID); err == nil {
			if theater, err := s.theaterDirectory.GetTheaterByID(theaterID); err == nil {
				response.Theater = theater
			}
		}
	}
}

func (s *service) publishShowtimeEvent(eventType notifications.EventType, showtime *Showtime) {
	if s.producer == nil {
		return
	}

	payload := notifications.ShowtimeEventPayload{
		ShowtimeID: showtime.ID,
		MovieID:    showtime.MovieID,
		TheaterID:  showtime.TheaterID,
		StartsAt:   showtime.StartsAt,
		EndsAt:     showtime.EndsAt,
		Price:      showtime.Price,
	}

	if err := s.producer.PublishShowtimeEvent(context.Background(), eventType, payload); err != nil {
		// Schedule changes must not fail because the bus is down
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
