package movies

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
	CreateMovie(req CreateMovieRequest) (*MovieResponse, error)
	GetMovieByID(id uuid.UUID) (*MovieResponse, error)
	UpdateMovie(id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(id uuid.UUID) error
	GetAllMovies(query MovieListQuery) (*PaginatedMovies, error)
	LookupDuration(movieID uuid.UUID) (time.Duration, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateMovie(req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Rating:          req.Rating,
		Genre:           req.Genre,
		ReleaseYear:     req.ReleaseYear,
		IsActive:        true,
	}

	if err := s.repo.Create(movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	response := movie.ToResponse()
	return &response, nil
}

func (s *service) GetMovieByID(id uuid.UUID) (*MovieResponse, error) {
	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("movie", id.String())
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	response := movie.ToResponse()
	return &response, nil
}

func (s *service) UpdateMovie(id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("movie", id.String())
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	// Build updates map
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.ReleaseYear != nil {
		updates["release_year"] = *req.ReleaseYear
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	updates["updated_at"] = time.Now().UTC()

	updatedMovie, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	response := updatedMovie.ToResponse()
	return &response, nil
}

func (s *service) DeleteMovie(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("movie", id.String())
		}
		return fmt.Errorf("failed to get movie: %w", err)
	}

	// A movie still on the schedule cannot be removed
	count, err := s.repo.CountFutureShowtimes(id)
	if err != nil {
		return fmt.Errorf("failed to check scheduled showtimes: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("movie has %d upcoming showtimes: %w", count, apperrors.ErrReferencedBySchedule)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	return nil
}

func (s *service) GetAllMovies(query MovieListQuery) (*PaginatedMovies, error) {
	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	movies, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	movieResponses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = movie.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedMovies{
		Movies:     movieResponses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// LookupDuration returns the running time used to derive a showtime's end.
func (s *service) LookupDuration(movieID uuid.UUID) (time.Duration, error) {
	movie, err := s.repo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NewNotFound("movie", movieID.String())
		}
		return 0, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie.Duration(), nil
}
