package repository

import (
	"context"
	"database/sql"
	"errors"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PurchaseRepository defines the interface for interacting with purchase data.
type PurchaseRepository interface {
	// CreatePurchase inserts a purchase. Returns ErrDuplicate when the
	// (user, course) pair already exists; the unique index makes the check
	// race-free across concurrent requests.
	CreatePurchase(ctx context.Context, p *model.Purchase) error
	// HasPurchase reports whether the user already bought the course.
	HasPurchase(ctx context.Context, userID, courseID string) (bool, error)
}

type purchaseRepo struct {
	db *sql.DB
}

// NewPurchaseRepo creates a new PurchaseRepository.
func NewPurchaseRepo(db *sql.DB) PurchaseRepository {
	return &purchaseRepo{db: db}
}

// CreatePurchase inserts a purchase record and fills in the generated fields.
func (r *purchaseRepo) CreatePurchase(ctx context.Context, p *model.Purchase) error {
	query := `
		INSERT INTO purchases (user_id, course_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.CourseID).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// HasPurchase reports whether a purchase exists for the (user, course) pair.
func (r *purchaseRepo) HasPurchase(ctx context.Context, userID, courseID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM purchases WHERE user_id = $1 AND course_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
