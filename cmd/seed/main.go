package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinetix/internal/movies"
	"cinetix/internal/shared/config"
	"cinetix/internal/shared/database"
	"cinetix/internal/showtimes"
	"cinetix/internal/theaters"
	"cinetix/internal/tickets"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Cinetix Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"showtimes",
		"theaters",
		"movies",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	// Seed movies first (no dependencies)
	movieList, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	// Seed theaters (no dependencies)
	theaterList, err := s.SeedTheaters()
	if err != nil {
		return fmt.Errorf("failed to seed theaters: %w", err)
	}

	// Seed showtimes (depends on movies and theaters)
	showtimeList, err := s.SeedShowtimes(movieList, theaterList)
	if err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	// Seed a few tickets on the first showtime
	if err := s.SeedTickets(showtimeList); err != nil {
		return fmt.Errorf("failed to seed tickets: %w", err)
	}

	// Clear Redis so rate limit windows start fresh
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis: %v", err)
	}

	return nil
}

// SeedMovies creates the movie catalog
func (s *Seeder) SeedMovies() ([]movies.Movie, error) {
	fmt.Println("  🎬 Seeding movies...")

	moviesData := []struct {
		title       string
		description string
		duration    int
		rating      string
		genre       string
		releaseYear int
	}{
		{"Midnight Express Run", "A night courier gets tangled in a heist across the city.", 118, "PG-13", "Thriller", 2025},
		{"The Cartographer", "A mapmaker discovers a country that exists on no map but hers.", 134, "PG", "Drama", 2024},
		{"Static", "First contact arrives as noise on an abandoned radio band.", 97, "PG-13", "Sci-Fi", 2026},
		{"Sous Chef", "Two rival kitchens, one shared dumbwaiter.", 105, "PG", "Comedy", 2025},
		{"Ironwood", "A logging town closes ranks after the forest starts growing back overnight.", 126, "R", "Horror", 2024},
		{"Second Encore", "A retired pianist agrees to one last tour with the daughter she never taught.", 142, "PG", "Drama", 2026},
	}

	var movieList []movies.Movie
	for _, movieData := range moviesData {
		movie := movies.Movie{
			ID:              uuid.New(),
			Title:           movieData.title,
			Description:     movieData.description,
			DurationMinutes: movieData.duration,
			Rating:          movieData.rating,
			Genre:           movieData.genre,
			ReleaseYear:     movieData.releaseYear,
			IsActive:        true,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Title, err)
		}

		movieList = append(movieList, movie)
		fmt.Printf("    ✅ Created movie: %s (%d min)\n", movie.Title, movie.DurationMinutes)
	}

	return movieList, nil
}

// SeedTheaters creates auditoriums of varying capacity
func (s *Seeder) SeedTheaters() ([]theaters.Theater, error) {
	fmt.Println("  🏟️ Seeding theaters...")

	theatersData := []struct {
		name     string
		location string
		capacity int
		isActive bool
	}{
		{"Screen 1", "Ground floor, west wing", 120, true},
		{"Screen 2", "Ground floor, east wing", 80, true},
		{"Premiere Hall", "Second floor", 48, true},
		{"Screen 4", "Second floor (under renovation)", 60, false},
	}

	var theaterList []theaters.Theater
	for _, theaterData := range theatersData {
		theater := theaters.Theater{
			ID:        uuid.New(),
			Name:      theaterData.name,
			Location:  theaterData.location,
			Capacity:  theaterData.capacity,
			IsActive:  theaterData.isActive,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&theater).Error; err != nil {
			return nil, fmt.Errorf("failed to create theater %s: %w", theater.Name, err)
		}

		theaterList = append(theaterList, theater)
		fmt.Printf("    ✅ Created theater: %s (capacity %d)\n", theater.Name, theater.Capacity)
	}

	return theaterList, nil
}

// SeedShowtimes schedules each active theater for tomorrow. Slots run
// back to back, so one showtime may start at the exact minute the
// previous one ends.
func (s *Seeder) SeedShowtimes(movieList []movies.Movie, theaterList []theaters.Theater) ([]showtimes.Showtime, error) {
	fmt.Println("  🕐 Seeding showtimes...")

	// Tomorrow at 10:00 UTC
	dayStart := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(10 * time.Hour)

	prices := []float64{9.50, 12.00, 15.50}

	var showtimeList []showtimes.Showtime
	movieIndex := 0
	for t, theater := range theaterList {
		if !theater.IsActive {
			continue
		}

		slotStart := dayStart
		for slot := 0; slot < 3; slot++ {
			movie := movieList[movieIndex%len(movieList)]
			movieIndex++

			showtime := showtimes.Showtime{
				ID:        uuid.New(),
				MovieID:   movie.ID,
				TheaterID: theater.ID,
				StartsAt:  slotStart,
				EndsAt:    slotStart.Add(movie.Duration()),
				Price:     prices[t%len(prices)],
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			if err := s.db.PostgreSQL.Create(&showtime).Error; err != nil {
				return nil, fmt.Errorf("failed to create showtime for %s: %w", movie.Title, err)
			}

			showtimeList = append(showtimeList, showtime)
			fmt.Printf("    ✅ Created showtime: %s in %s at %s\n",
				movie.Title, theater.Name, showtime.StartsAt.Format("15:04"))

			slotStart = showtime.EndsAt
		}
	}

	return showtimeList, nil
}

// SeedTickets sells a handful of seats on the first showtime and cancels
// one, leaving sold_tickets equal to the purchased count
func (s *Seeder) SeedTickets(showtimeList []showtimes.Showtime) error {
	fmt.Println("  🎟️ Seeding tickets...")

	if len(showtimeList) == 0 {
		return nil
	}
	showtime := showtimeList[0]

	customers := []struct {
		seat  string
		name  string
		email string
	}{
		{"A-1", "Ava Torres", "ava.torres@example.com"},
		{"A-2", "Ben Okafor", "ben.okafor@example.com"},
		{"A-3", "Chloe Lindqvist", "chloe.l@example.com"},
		{"B-7", "Dev Patel", "dev.patel@example.com"},
		{"B-8", "Erin Walsh", "erin.walsh@example.com"},
	}
	sold := 0
	for _, customer := range customers {
		ticket := tickets.Ticket{
			ID:            uuid.New(),
			ShowtimeID:    showtime.ID,
			SeatNumber:    customer.seat,
			CustomerName:  customer.name,
			CustomerEmail: customer.email,
			Price:         showtime.Price,
			Status:        tickets.StatusPurchased,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&ticket).Error; err != nil {
			return fmt.Errorf("failed to create ticket for seat %s: %w", customer.seat, err)
		}
		sold++
		fmt.Printf("    ✅ Sold seat %s to %s\n", customer.seat, customer.name)
	}

	// One cancelled ticket. Its seat stays free and it does not count
	// toward sold_tickets.
	cancelledAt := time.Now()
	cancelled := tickets.Ticket{
		ID:            uuid.New(),
		ShowtimeID:    showtime.ID,
		SeatNumber:    "C-4",
		CustomerName:  "Frank Moreau",
		CustomerEmail: "refunded@example.com",
		Price:         showtime.Price,
		Status:        tickets.StatusCancelled,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
		CancelledAt:   &cancelledAt,
	}
	if err := s.db.PostgreSQL.Create(&cancelled).Error; err != nil {
		return fmt.Errorf("failed to create cancelled ticket: %w", err)
	}
	fmt.Println("    ✅ Created cancelled ticket for seat C-4")

	err := s.db.PostgreSQL.Model(&showtimes.Showtime{}).
		Where("id = ?", showtime.ID).
		Update("sold_tickets", sold).Error
	if err != nil {
		return fmt.Errorf("failed to update sold counter: %w", err)
	}
	fmt.Printf("    ✅ Showtime sold counter set to %d\n", sold)

	return nil
}
