package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cinetix/internal/shared/apperrors"
	"cinetix/internal/showtimes"
)

type Repository interface {
	Purchase(ctx context.Context, showtimeID uuid.UUID, seatNumber, customerName, customerEmail string, now time.Time) (*Ticket, error)
	Cancel(ctx context.Context, ticketID uuid.UUID, now time.Time) (*Ticket, error)
	GetByID(id uuid.UUID) (*Ticket, error)
	GetByEmail(query TicketListQuery) ([]Ticket, int64, error)
}

type repository struct {
	db              *gorm.DB
	lockWaitTimeout time.Duration
}

func NewRepository(db *gorm.DB, lockWaitTimeout time.Duration) Repository {
	return &repository{db: db, lockWaitTimeout: lockWaitTimeout}
}

// Purchase sells one seat under the showtime's row lock. Every check
// runs against state re-read inside the transaction; nothing read
// before the lock was granted is trusted.
func (r *repository) Purchase(ctx context.Context, showtimeID uuid.UUID, seatNumber, customerName, customerEmail string, now time.Time) (*Ticket, error) {
	var ticket *Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.applyLockTimeout(tx); err != nil {
			return err
		}

		// The exclusive row lock serializes every sale and cancellation
		// for this showtime.
		var showtime showtimes.Showtime
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", showtimeID).
			First(&showtime).Error; err != nil {
			return err
		}

		// Sales close the moment the screening starts
		if !showtime.StartsAt.After(now) {
			return apperrors.ErrPastOrOngoingShowtime
		}

		var theater struct {
			Capacity int `json:"capacity"`
		}
		if err := tx.Table("theaters").
			Select("capacity").
			Where("id = ?", showtime.TheaterID).
			Scan(&theater).Error; err != nil {
			return fmt.Errorf("failed to read theater capacity: %w", err)
		}

		if showtime.SoldTickets >= theater.Capacity {
			return apperrors.ErrSoldOut
		}

		// Only purchased tickets hold a seat; a cancelled one has freed it
		var existing Ticket
		err := tx.Where("showtime_id = ? AND seat_number = ? AND status = ?",
			showtimeID, seatNumber, StatusPurchased).
			First(&existing).Error
		if err == nil {
			return apperrors.ErrSeatTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ticket = &Ticket{
			ShowtimeID:    showtimeID,
			SeatNumber:    seatNumber,
			CustomerName:  customerName,
			CustomerEmail: customerEmail,
			Price:         showtime.Price,
			Status:        StatusPurchased,
		}
		if err := tx.Create(ticket).Error; err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		// The counter moves in the same transaction as the insert
		if err := tx.Model(&showtime).Update("sold_tickets", showtime.SoldTickets+1).Error; err != nil {
			return fmt.Errorf("failed to increment sold tickets: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, translatePgError(err)
	}

	return ticket, nil
}

// Cancel flips a purchased ticket to cancelled under the same showtime
// lock that purchases take, so a seat is never freed and resold
// concurrently.
func (r *repository) Cancel(ctx context.Context, ticketID uuid.UUID, now time.Time) (*Ticket, error) {
	var cancelled *Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.applyLockTimeout(tx); err != nil {
			return err
		}

		// Unlocked read to learn which showtime to lock
		var ticket Ticket
		if err := tx.Where("id = ?", ticketID).First(&ticket).Error; err != nil {
			return err
		}

		var showtime showtimes.Showtime
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", ticket.ShowtimeID).
			First(&showtime).Error; err != nil {
			return err
		}

		// Re-read under the lock; a concurrent cancellation may have won
		if err := tx.Where("id = ?", ticketID).First(&ticket).Error; err != nil {
			return err
		}

		if !ticket.Status.CanBeCancelled() {
			return apperrors.ErrInvalidTicketState
		}

		// The refund window closes when the screening starts
		if !showtime.StartsAt.After(now) {
			return apperrors.ErrPastOrOngoingShowtime
		}

		updates := map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
			"updated_at":   now,
		}
		if err := tx.Model(&ticket).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel ticket: %w", err)
		}

		newSold := showtime.SoldTickets - 1
		if newSold < 0 {
			return fmt.Errorf("sold ticket counter would go negative")
		}
		if err := tx.Model(&showtime).Update("sold_tickets", newSold).Error; err != nil {
			return fmt.Errorf("failed to decrement sold tickets: %w", err)
		}

		ticket.Status = StatusCancelled
		cancelledAt := now
		ticket.CancelledAt = &cancelledAt
		ticket.UpdatedAt = now
		cancelled = &ticket

		return nil
	})
	if err != nil {
		return nil, translatePgError(err)
	}

	return cancelled, nil
}

func (r *repository) GetByID(id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.Where("id = ?", id).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByEmail(query TicketListQuery) ([]Ticket, int64, error) {
	var results []Ticket
	var totalCount int64

	db := r.db.Model(&Ticket{}).Where("customer_email = ?", query.Email)

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

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error

	return results, totalCount, err
}

// applyLockTimeout bounds how long the transaction waits for the row
// lock. Postgres raises SQLSTATE 55P03 when the wait expires, which
// surfaces to callers as ErrLockContention.
func (r *repository) applyLockTimeout(tx *gorm.DB) error {
	if r.lockWaitTimeout <= 0 {
		return nil
	}
	return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockWaitTimeout.Milliseconds())).Error
}

// translatePgError maps Postgres failure codes onto domain errors.
// 55P03 (lock_not_available) and 40P01 (deadlock_detected) both mean
// the caller lost a timing race and may retry. 23505 means the partial
// unique index on purchased seats fired.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40P01":
			return apperrors.ErrLockContention
		case "23505":
			return apperrors.ErrSeatTaken
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrLockContention
	}
	return err
}
