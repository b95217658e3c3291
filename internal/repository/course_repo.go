package repository

import (
	"context"
	"database/sql"

	"app/internal/model"
)

// CourseRepository defines the interface for interacting with course data.
// Mutating operations are scoped by the acting creator ID: ownership is
// enforced inside the query itself, not by a separate lookup.
type CourseRepository interface {
	CreateCourse(ctx context.Context, c *model.Course) error
	// GetCourseByID retrieves a course by its ID; returns nil, nil when absent.
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	// ListCourses retrieves the full catalog.
	ListCourses(ctx context.Context) ([]model.Course, error)
	// UpdateCourseOwned updates a course only if it belongs to creatorID.
	// Returns ErrNoRowsAffected when no matching (id, creator) row exists.
	UpdateCourseOwned(ctx context.Context, c *model.Course, creatorID string) error
	// DeleteCourseOwned deletes a course only if it belongs to creatorID and
	// returns the deleted record. Returns ErrNoRowsAffected on a scope miss.
	DeleteCourseOwned(ctx context.Context, courseID, creatorID string) (*model.Course, error)
}

type courseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepository.
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &courseRepo{db: db}
}

// CreateCourse inserts a new course and fills in the generated fields.
func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses (title, description, price, image_public_id, image_url, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		c.Title, c.Description, c.Price, c.Image.PublicID, c.Image.URL, c.CreatorID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetCourseByID retrieves a course by its ID.
func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `
		SELECT id, title, description, price, image_public_id, image_url, creator_id, created_at, updated_at
		FROM courses
		WHERE id = $1
	`
	var c model.Course
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Price,
		&c.Image.PublicID,
		&c.Image.URL,
		&c.CreatorID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListCourses retrieves every course in the catalog.
func (r *courseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	query := `
		SELECT id, title, description, price, image_public_id, image_url, creator_id, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Course
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&c.Price,
			&c.Image.PublicID,
			&c.Image.URL,
			&c.CreatorID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	// If no courses found, return an empty slice, not nil.
	if len(courses) == 0 {
		return []model.Course{}, nil
	}

	return courses, nil
}

// UpdateCourseOwned updates a course record in a single query scoped by
// both the course ID and the creator ID.
func (r *courseRepo) UpdateCourseOwned(ctx context.Context, c *model.Course, creatorID string) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, price = $3, image_public_id = $4, image_url = $5, updated_at = NOW()
		WHERE id = $6 AND creator_id = $7
		RETURNING creator_id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.Title, c.Description, c.Price, c.Image.PublicID, c.Image.URL, c.ID, creatorID).
		Scan(&c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNoRowsAffected
	}
	return err
}

// DeleteCourseOwned deletes a course record scoped by creator ID and
// returns the deleted record.
func (r *courseRepo) DeleteCourseOwned(ctx context.Context, courseID, creatorID string) (*model.Course, error) {
	query := `
		DELETE FROM courses
		WHERE id = $1 AND creator_id = $2
		RETURNING id, title, description, price, image_public_id, image_url, creator_id, created_at, updated_at
	`
	var c model.Course
	err := r.db.QueryRowContext(ctx, query, courseID, creatorID).Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Price,
		&c.Image.PublicID,
		&c.Image.URL,
		&c.CreatorID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoRowsAffected
		}
		return nil, err
	}
	return &c, nil
}
