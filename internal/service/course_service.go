package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// allowedImageTypes is the fixed allow-list for course images.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// CreateCourseInput carries the validated fields for a new course.
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	ImageData   []byte
	ImageType   string
	CreatorID   string
}

// UpdateCoursePatch carries optional replacements for course fields.
// A nil field retains the stored value; an absent image retains the
// stored reference.
type UpdateCoursePatch struct {
	Title       *string
	Description *string
	Price       *float64
	ImageData   []byte
	ImageType   string
}

// CourseService defines the interface for course operations.
type CourseService interface {
	CreateCourse(ctx context.Context, in CreateCourseInput) (*model.Course, error)
	// GetCourseByID retrieves a course or fails with ErrCourseNotFound.
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	// ListCourses retrieves the full catalog.
	ListCourses(ctx context.Context) ([]model.Course, error)
	// UpdateCourse applies a patch to a course owned by creatorID.
	UpdateCourse(ctx context.Context, courseID, creatorID string, patch UpdateCoursePatch) (*model.Course, error)
	// DeleteCourse removes a course owned by creatorID.
	DeleteCourse(ctx context.Context, courseID, creatorID string) (*model.Course, error)
}

// courseService is the implementation of CourseService.
type courseService struct {
	repo            repository.CourseRepository
	uploader        MediaUploader
	externalTimeout time.Duration
	logger          zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo repository.CourseRepository, uploader MediaUploader, externalTimeout time.Duration, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:            repo,
		uploader:        uploader,
		externalTimeout: externalTimeout,
		logger:          logger.With().Str("service", "CourseService").Logger(),
	}
}

// CreateCourse validates the image type, uploads the image and inserts the
// course record. The uploader is never invoked for a disallowed type.
func (s *courseService) CreateCourse(ctx context.Context, in CreateCourseInput) (*model.Course, error) {
	image, err := s.uploadImage(ctx, in.ImageData, in.ImageType)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       image,
		CreatorID:   in.CreatorID,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		s.logger.Error().Err(err).Str("creator_id", in.CreatorID).Msg("Failed to insert course")
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// GetCourseByID retrieves a course by its ID.
func (s *courseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

// ListCourses retrieves every course in the catalog.
func (s *courseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.repo.ListCourses(ctx)
}

// UpdateCourse applies the patch and persists it through a creator-scoped
// update, so ownership is enforced by the query itself.
func (s *courseService) UpdateCourse(ctx context.Context, courseID, creatorID string, patch UpdateCoursePatch) (*model.Course, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Price != nil {
		course.Price = *patch.Price
	}
	if len(patch.ImageData) > 0 {
		image, err := s.uploadImage(ctx, patch.ImageData, patch.ImageType)
		if err != nil {
			return nil, err
		}
		course.Image = image
	}

	if err := s.repo.UpdateCourseOwned(ctx, course, creatorID); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			// The course existed moments ago, so a scope miss here means
			// the caller is not the creator (or the row was deleted
			// concurrently, which surfaces the same way).
			return nil, ErrNotCourseOwner
		}
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to update course")
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

// DeleteCourse removes a course through a creator-scoped delete.
func (s *courseService) DeleteCourse(ctx context.Context, courseID, creatorID string) (*model.Course, error) {
	course, err := s.repo.DeleteCourseOwned(ctx, courseID, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			existing, lookupErr := s.repo.GetCourseByID(ctx, courseID)
			if lookupErr != nil {
				return nil, fmt.Errorf("delete course: %w", lookupErr)
			}
			if existing == nil {
				return nil, ErrCourseNotFound
			}
			return nil, ErrNotCourseOwner
		}
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to delete course")
		return nil, fmt.Errorf("delete course: %w", err)
	}
	return course, nil
}

// uploadImage enforces the MIME allow-list and forwards to the uploader
// under a bounded timeout.
func (s *courseService) uploadImage(ctx context.Context, data []byte, contentType string) (model.ImageRef, error) {
	if !allowedImageTypes[contentType] {
		return model.ImageRef{}, fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}
	uploadCtx, cancel := context.WithTimeout(ctx, s.externalTimeout)
	defer cancel()
	return s.uploader.Upload(uploadCtx, data, contentType)
}
