package database

import (
	"cinetix/internal/movies"
	"cinetix/internal/showtimes"
	"cinetix/internal/theaters"
	"cinetix/internal/tickets"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&movies.Movie{},
		&theaters.Theater{},
		&showtimes.Showtime{},
		&tickets.Ticket{},
	)
}
