package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Seat uniqueness is scoped to purchased tickets only, so a cancelled
	// seat can be bought again. Backstop for the locked purchase path.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_purchased_seat_per_showtime
		ON tickets (showtime_id, seat_number)
		WHERE status = 'PURCHASED';
	`).Error
	if err != nil {
		return err
	}

	// Add index for occupied-seat lookups inside the purchase transaction
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_showtime_status
		ON tickets (showtime_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Add index for the interval overlap query on showtime scheduling
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_showtimes_theater_interval
		ON showtimes (theater_id, starts_at, ends_at);
	`).Error
	if err != nil {
		return err
	}

	// Counter can never go negative even under manual fixes
	err = db.Exec(`
		ALTER TABLE showtimes
		DROP CONSTRAINT IF EXISTS chk_showtimes_sold_tickets_non_negative;
	`).Error
	if err != nil {
		return err
	}
	err = db.Exec(`
		ALTER TABLE showtimes
		ADD CONSTRAINT chk_showtimes_sold_tickets_non_negative
		CHECK (sold_tickets >= 0);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
