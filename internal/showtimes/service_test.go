package showtimes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinetix/internal/notifications"
	"cinetix/internal/shared/apperrors"
	"cinetix/pkg/logger"
)

// stubRepo records calls and serves canned rows so service rules can be
// exercised without a database.
type stubRepo struct {
	byID    map[uuid.UUID]*Showtime
	created *Showtime

	conflict            *Showtime
	conflictCalls       int
	lastConflictTheater uuid.UUID
	lastConflictStart   time.Time
	lastConflictEnd     time.Time
	lastConflictExclude *uuid.UUID

	lastUpdates map[string]interface{}
	deleted     []uuid.UUID

	all   []Showtime
	total int64

	maxSold  int
	occupied []string
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[uuid.UUID]*Showtime)}
}

func (r *stubRepo) Create(showtime *Showtime) error {
	if showtime.ID == uuid.Nil {
		showtime.ID = uuid.New()
	}
	r.created = showtime
	r.byID[showtime.ID] = showtime
	return nil
}

func (r *stubRepo) GetByID(id uuid.UUID) (*Showtime, error) {
	showtime, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *showtime
	return &copied, nil
}

func (r *stubRepo) Update(id uuid.UUID, updates map[string]interface{}) (*Showtime, error) {
	showtime, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.lastUpdates = updates
	copied := *showtime
	return &copied, nil
}

func (r *stubRepo) Delete(id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.byID, id)
	return nil
}

func (r *stubRepo) GetAll(query ShowtimeListQuery) ([]Showtime, int64, error) {
	return r.all, r.total, nil
}

func (r *stubRepo) FindConflict(theaterID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) (*Showtime, error) {
	r.conflictCalls++
	r.lastConflictTheater = theaterID
	r.lastConflictStart = startsAt
	r.lastConflictEnd = endsAt
	r.lastConflictExclude = excludeID
	return r.conflict, nil
}

func (r *stubRepo) MaxSoldTickets(theaterID uuid.UUID) (int, error) {
	return r.maxSold, nil
}

func (r *stubRepo) OccupiedSeats(showtimeID uuid.UUID) ([]string, error) {
	return r.occupied, nil
}

type stubCatalog struct {
	duration time.Duration
	err      error
	movie    *MovieResponse
}

func (c *stubCatalog) LookupDuration(movieID uuid.UUID) (time.Duration, error) {
	return c.duration, c.err
}

func (c *stubCatalog) GetMovieByID(id uuid.UUID) (*MovieResponse, error) {
	if c.movie == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return c.movie, nil
}

type stubDirectory struct {
	capacity int
	active   bool
	err      error
	theater  *TheaterResponse
}

func (d *stubDirectory) LookupCapacity(theaterID uuid.UUID) (int, bool, error) {
	return d.capacity, d.active, d.err
}

func (d *stubDirectory) GetTheaterByID(id uuid.UUID) (*TheaterResponse, error) {
	if d.theater == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return d.theater, nil
}

type capturingProducer struct {
	showtimeEvents []notifications.EventType
	lastPayload    notifications.ShowtimeEventPayload
	err            error
}

func (p *capturingProducer) PublishTicketEvent(ctx context.Context, eventType notifications.EventType, payload notifications.TicketEventPayload) error {
	return p.err
}

func (p *capturingProducer) PublishShowtimeEvent(ctx context.Context, eventType notifications.EventType, payload notifications.ShowtimeEventPayload) error {
	p.showtimeEvents = append(p.showtimeEvents, eventType)
	p.lastPayload = payload
	return p.err
}

func (p *capturingProducer) HealthCheck(ctx context.Context) error { return nil }
func (p *capturingProducer) Close() error                          { return nil }

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestService(repo *stubRepo, catalog *stubCatalog, directory *stubDirectory) (*service, *capturingProducer) {
	svc := NewService(repo, logger.New()).(*service)
	svc.now = func() time.Time { return testNow }
	if catalog != nil {
		svc.SetMovieCatalog(catalog)
	}
	if directory != nil {
		svc.SetTheaterDirectory(directory)
	}
	producer := &capturingProducer{}
	svc.SetEventProducer(producer)
	return svc, producer
}

func TestCreateShowtimeDerivesEndFromMovieDuration(t *testing.T) {
	repo := newStubRepo()
	catalog := &stubCatalog{duration: 134 * time.Minute}
	directory := &stubDirectory{capacity: 120, active: true}
	svc, producer := newTestService(repo, catalog, directory)

	startsAt := testNow.Add(48 * time.Hour)
	resp, err := svc.CreateShowtime(CreateShowtimeRequest{
		MovieID:   uuid.New().String(),
		TheaterID: uuid.New().String(),
		StartsAt:  startsAt,
		Price:     14.50,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, startsAt, repo.created.StartsAt)
	assert.Equal(t, startsAt.Add(134*time.Minute), repo.created.EndsAt)
	assert.Equal(t, startsAt.Add(134*time.Minute), resp.EndsAt)
	assert.Equal(t, 14.50, resp.Price)
	assert.Equal(t, 0, resp.SoldTickets)

	// The overlap check saw the derived interval, not a client-supplied one
	assert.Equal(t, 1, repo.conflictCalls)
	assert.Equal(t, startsAt, repo.lastConflictStart)
	assert.Equal(t, startsAt.Add(134*time.Minute), repo.lastConflictEnd)
	assert.Nil(t, repo.lastConflictExclude)

	require.Len(t, producer.showtimeEvents, 1)
	assert.Equal(t, notifications.EventShowtimeCreated, producer.showtimeEvents[0])
}

func TestCreateShowtimeRejectsPastStart(t *testing.T) {
	repo := newStubRepo()
	svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 100, active: true})

	tests := []struct {
		name     string
		startsAt time.Time
	}{
		{name: "start in the past", startsAt: testNow.Add(-time.Hour)},
		{name: "start exactly now", startsAt: testNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateShowtime(CreateShowtimeRequest{
				MovieID:   uuid.New().String(),
				TheaterID: uuid.New().String(),
				StartsAt:  tt.startsAt,
				Price:     10,
			})
			assert.ErrorIs(t, err, apperrors.ErrPastDate)
			assert.Nil(t, repo.created)
		})
	}
}

func TestCreateShowtimeRejectsInactiveTheater(t *testing.T) {
	repo := newStubRepo()
	svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 100, active: false})

	_, err := svc.CreateShowtime(CreateShowtimeRequest{
		MovieID:   uuid.New().String(),
		TheaterID: uuid.New().String(),
		StartsAt:  testNow.Add(time.Hour),
		Price:     10,
	})

	assert.ErrorIs(t, err, apperrors.ErrTheaterInactive)
	assert.Zero(t, repo.conflictCalls)
}

func TestCreateShowtimeRejectsOverlap(t *testing.T) {
	repo := newStubRepo()
	repo.conflict = &Showtime{ID: uuid.New()}
	svc, producer := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 100, active: true})

	_, err := svc.CreateShowtime(CreateShowtimeRequest{
		MovieID:   uuid.New().String(),
		TheaterID: uuid.New().String(),
		StartsAt:  testNow.Add(time.Hour),
		Price:     10,
	})

	assert.ErrorIs(t, err, apperrors.ErrSchedulingConflict)
	assert.Nil(t, repo.created)
	assert.Empty(t, producer.showtimeEvents)
}

func TestCreateShowtimeRejectsUnknownMovie(t *testing.T) {
	repo := newStubRepo()
	catalog := &stubCatalog{err: apperrors.NewNotFound("movie", uuid.New().String())}
	svc, _ := newTestService(repo, catalog, &stubDirectory{capacity: 100, active: true})

	_, err := svc.CreateShowtime(CreateShowtimeRequest{
		MovieID:   uuid.New().String(),
		TheaterID: uuid.New().String(),
		StartsAt:  testNow.Add(time.Hour),
		Price:     10,
	})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateShowtimeRejectsStartedShowtime(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{
		ID:        id,
		MovieID:   uuid.New(),
		TheaterID: uuid.New(),
		StartsAt:  testNow.Add(-time.Hour),
		EndsAt:    testNow.Add(time.Hour),
	}
	svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 100, active: true})

	price := 20.0
	_, err := svc.UpdateShowtime(id, UpdateShowtimeRequest{Price: &price})

	assert.ErrorIs(t, err, apperrors.ErrAlreadyStarted)
	assert.Nil(t, repo.lastUpdates)
}

func TestUpdateShowtimePriceOnlySkipsScheduleCheck(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{
		ID:        id,
		MovieID:   uuid.New(),
		TheaterID: uuid.New(),
		StartsAt:  testNow.Add(24 * time.Hour),
		EndsAt:    testNow.Add(26 * time.Hour),
		Price:     12,
	}
	svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 100, active: true})

	price := 15.0
	_, err := svc.UpdateShowtime(id, UpdateShowtimeRequest{Price: &price})

	require.NoError(t, err)
	assert.Zero(t, repo.conflictCalls)
	assert.Equal(t, 15.0, repo.lastUpdates["price"])
	assert.NotContains(t, repo.lastUpdates, "starts_at")
	assert.NotContains(t, repo.lastUpdates, "ends_at")
}

func TestUpdateShowtimeRescheduleRederivesEndAndExcludesSelf(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{
		ID:        id,
		MovieID:   uuid.New(),
		TheaterID: uuid.New(),
		StartsAt:  testNow.Add(24 * time.Hour),
		EndsAt:    testNow.Add(26 * time.Hour),
	}
	svc, producer := newTestService(repo, &stubCatalog{duration: 97 * time.Minute}, &stubDirectory{capacity: 100, active: true})

	newStart := testNow.Add(72 * time.Hour)
	_, err := svc.UpdateShowtime(id, UpdateShowtimeRequest{StartsAt: &newStart})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.conflictCalls)
	assert.Equal(t, newStart, repo.lastConflictStart)
	assert.Equal(t, newStart.Add(97*time.Minute), repo.lastConflictEnd)
	require.NotNil(t, repo.lastConflictExclude)
	assert.Equal(t, id, *repo.lastConflictExclude)

	assert.Equal(t, newStart, repo.lastUpdates["starts_at"])
	assert.Equal(t, newStart.Add(97*time.Minute), repo.lastUpdates["ends_at"])

	require.Len(t, producer.showtimeEvents, 1)
	assert.Equal(t, notifications.EventShowtimeUpdated, producer.showtimeEvents[0])
}

func TestUpdateShowtimeRejectsReschedulingToPast(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{
		ID:        id,
		MovieID:   uuid.New(),
		TheaterID: uuid.New(),
		StartsAt:  testNow.Add(24 * time.Hour),
		EndsAt:    testNow.Add(26 * time.Hour),
	}
	svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 100, active: true})

	pastStart := testNow.Add(-time.Hour)
	_, err := svc.UpdateShowtime(id, UpdateShowtimeRequest{StartsAt: &pastStart})

	assert.ErrorIs(t, err, apperrors.ErrPastDate)
}

func TestUpdateShowtimeTheaterMoveChecksSoldAgainstDestination(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{
		ID:          id,
		MovieID:     uuid.New(),
		TheaterID:   uuid.New(),
		StartsAt:    testNow.Add(24 * time.Hour),
		EndsAt:      testNow.Add(26 * time.Hour),
		SoldTickets: 80,
	}

	t.Run("destination too small", func(t *testing.T) {
		svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 48, active: true})

		dest := uuid.New().String()
		_, err := svc.UpdateShowtime(id, UpdateShowtimeRequest{TheaterID: &dest})

		assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	})

	t.Run("destination holds everyone already booked", func(t *testing.T) {
		svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 80, active: true})

		dest := uuid.New().String()
		_, err := svc.UpdateShowtime(id, UpdateShowtimeRequest{TheaterID: &dest})

		require.NoError(t, err)
	})

	t.Run("inactive destination", func(t *testing.T) {
		svc, _ := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 500, active: false})

		dest := uuid.New().String()
		_, err := svc.UpdateShowtime(id, UpdateShowtimeRequest{TheaterID: &dest})

		assert.ErrorIs(t, err, apperrors.ErrTheaterInactive)
	})
}

func TestDeleteShowtime(t *testing.T) {
	t.Run("future showtime without sales is deleted", func(t *testing.T) {
		repo := newStubRepo()
		id := uuid.New()
		repo.byID[id] = &Showtime{
			ID:        id,
			TheaterID: uuid.New(),
			StartsAt:  testNow.Add(time.Hour),
			EndsAt:    testNow.Add(3 * time.Hour),
		}
		svc, producer := newTestService(repo, nil, nil)

		err := svc.DeleteShowtime(id)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{id}, repo.deleted)
		require.Len(t, producer.showtimeEvents, 1)
		assert.Equal(t, notifications.EventShowtimeDeleted, producer.showtimeEvents[0])
	})

	t.Run("sold tickets block deletion", func(t *testing.T) {
		repo := newStubRepo()
		id := uuid.New()
		repo.byID[id] = &Showtime{
			ID:          id,
			StartsAt:    testNow.Add(time.Hour),
			EndsAt:      testNow.Add(3 * time.Hour),
			SoldTickets: 1,
		}
		svc, _ := newTestService(repo, nil, nil)

		err := svc.DeleteShowtime(id)

		assert.ErrorIs(t, err, apperrors.ErrShowtimeHasSales)
		assert.Empty(t, repo.deleted)
	})

	t.Run("started showtime cannot be deleted", func(t *testing.T) {
		repo := newStubRepo()
		id := uuid.New()
		repo.byID[id] = &Showtime{
			ID:       id,
			StartsAt: testNow.Add(-time.Hour),
			EndsAt:   testNow.Add(time.Hour),
		}
		svc, _ := newTestService(repo, nil, nil)

		err := svc.DeleteShowtime(id)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyStarted)
	})

	t.Run("sales rejection wins over started rejection", func(t *testing.T) {
		repo := newStubRepo()
		id := uuid.New()
		repo.byID[id] = &Showtime{
			ID:          id,
			StartsAt:    testNow.Add(-time.Hour),
			EndsAt:      testNow.Add(time.Hour),
			SoldTickets: 5,
		}
		svc, _ := newTestService(repo, nil, nil)

		err := svc.DeleteShowtime(id)

		assert.ErrorIs(t, err, apperrors.ErrShowtimeHasSales)
	})

	t.Run("missing showtime", func(t *testing.T) {
		svc, _ := newTestService(newStubRepo(), nil, nil)

		err := svc.DeleteShowtime(uuid.New())

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestGetAvailability(t *testing.T) {
	tests := []struct {
		name          string
		capacity      int
		sold          int
		wantAvailable int
		wantSoldOut   bool
	}{
		{name: "seats remaining", capacity: 120, sold: 45, wantAvailable: 75, wantSoldOut: false},
		{name: "nothing sold", capacity: 80, sold: 0, wantAvailable: 80, wantSoldOut: false},
		{name: "last seat gone", capacity: 80, sold: 80, wantAvailable: 0, wantSoldOut: true},
		{name: "capacity shrank below sold", capacity: 40, sold: 45, wantAvailable: 0, wantSoldOut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			id := uuid.New()
			repo.byID[id] = &Showtime{
				ID:          id,
				TheaterID:   uuid.New(),
				StartsAt:    testNow.Add(time.Hour),
				SoldTickets: tt.sold,
			}
			svc, _ := newTestService(repo, nil, &stubDirectory{capacity: tt.capacity, active: true})

			resp, err := svc.GetAvailability(id)

			require.NoError(t, err)
			assert.Equal(t, id.String(), resp.ShowtimeID)
			assert.Equal(t, tt.capacity, resp.Capacity)
			assert.Equal(t, tt.sold, resp.Sold)
			assert.Equal(t, tt.wantAvailable, resp.Available)
			assert.Equal(t, tt.wantSoldOut, resp.SoldOut)
		})
	}

	t.Run("missing showtime", func(t *testing.T) {
		svc, _ := newTestService(newStubRepo(), nil, &stubDirectory{capacity: 100, active: true})

		_, err := svc.GetAvailability(uuid.New())

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestGetOccupiedSeats(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{ID: id, StartsAt: testNow.Add(time.Hour)}
	repo.occupied = []string{"A-1", "A-2", "B-7"}
	svc, _ := newTestService(repo, nil, nil)

	resp, err := svc.GetOccupiedSeats(id)

	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "A-2", "B-7"}, resp.Seats)

	// No purchased tickets serializes as an empty list, not null
	repo.occupied = nil
	resp, err = svc.GetOccupiedSeats(id)
	require.NoError(t, err)
	assert.NotNil(t, resp.Seats)
	assert.Empty(t, resp.Seats)
}

func TestExceedsCapacity(t *testing.T) {
	tests := []struct {
		name     string
		maxSold  int
		proposed int
		want     bool
	}{
		{name: "proposed below best seller", maxSold: 50, proposed: 49, want: true},
		{name: "proposed equals best seller", maxSold: 50, proposed: 50, want: false},
		{name: "proposed above best seller", maxSold: 50, proposed: 51, want: false},
		{name: "no showtimes", maxSold: 0, proposed: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			repo.maxSold = tt.maxSold
			svc, _ := newTestService(repo, nil, nil)

			got, err := svc.ExceedsCapacity(uuid.New(), tt.proposed)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetAllShowtimesPagination(t *testing.T) {
	repo := newStubRepo()
	repo.all = []Showtime{
		{ID: uuid.New(), MovieID: uuid.New(), TheaterID: uuid.New()},
		{ID: uuid.New(), MovieID: uuid.New(), TheaterID: uuid.New()},
	}
	repo.total = 25
	svc, _ := newTestService(repo, nil, nil)

	resp, err := svc.GetAllShowtimes(ShowtimeListQuery{Limit: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Showtimes, 2)
	assert.Equal(t, int64(25), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestGetShowtimeByIDPopulatesRefs(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{ID: id, MovieID: uuid.New(), TheaterID: uuid.New(), StartsAt: testNow.Add(time.Hour)}

	catalog := &stubCatalog{movie: &MovieResponse{Title: "The Cartographer", DurationMinutes: 134}}
	directory := &stubDirectory{capacity: 120, active: true, theater: &TheaterResponse{Name: "Screen 1", Capacity: 120}}
	svc, _ := newTestService(repo, catalog, directory)

	resp, err := svc.GetShowtimeByID(id)

	require.NoError(t, err)
	require.NotNil(t, resp.Movie)
	assert.Equal(t, "The Cartographer", resp.Movie.Title)
	require.NotNil(t, resp.Theater)
	assert.Equal(t, "Screen 1", resp.Theater.Name)
}

func TestGetShowtimeByIDSurvivesRefLookupFailure(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &Showtime{ID: id, MovieID: uuid.New(), TheaterID: uuid.New(), StartsAt: testNow.Add(time.Hour)}

	// Neither lookup resolves; the showtime itself is still served
	svc, _ := newTestService(repo, &stubCatalog{}, &stubDirectory{})

	resp, err := svc.GetShowtimeByID(id)

	require.NoError(t, err)
	assert.Nil(t, resp.Movie)
	assert.Nil(t, resp.Theater)
	assert.Equal(t, id.String(), resp.ID)
}

func TestPublishFailureDoesNotFailScheduling(t *testing.T) {
	repo := newStubRepo()
	svc, producer := newTestService(repo, &stubCatalog{duration: 2 * time.Hour}, &stubDirectory{capacity: 100, active: true})
	producer.err = errors.New("broker unreachable")

	_, err := svc.CreateShowtime(CreateShowtimeRequest{
		MovieID:   uuid.New().String(),
		TheaterID: uuid.New().String(),
		StartsAt:  testNow.Add(time.Hour),
		Price:     10,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.created)
}
