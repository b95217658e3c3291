package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// PurchaseService handles the course purchase flow.
type PurchaseService interface {
	// BuyCourse creates a payment intent for the course and records the
	// purchase. Fails with ErrCourseNotFound, ErrAlreadyPurchased or
	// ErrPaymentFailed.
	BuyCourse(ctx context.Context, userID, courseID string) (*model.Course, string, error)
}

// purchaseService is the implementation of PurchaseService.
type purchaseService struct {
	courseRepo      repository.CourseRepository
	purchaseRepo    repository.PurchaseRepository
	payments        PaymentProvider
	currency        string
	externalTimeout time.Duration
	logger          zerolog.Logger
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(
	courseRepo repository.CourseRepository,
	purchaseRepo repository.PurchaseRepository,
	payments PaymentProvider,
	currency string,
	externalTimeout time.Duration,
	logger zerolog.Logger,
) PurchaseService {
	return &purchaseService{
		courseRepo:      courseRepo,
		purchaseRepo:    purchaseRepo,
		payments:        payments,
		currency:        currency,
		externalTimeout: externalTimeout,
		logger:          logger.With().Str("service", "PurchaseService").Logger(),
	}
}

// BuyCourse runs the purchase flow: course must exist, the (user, course)
// pair must not already be purchased, then the payment intent is created
// and the purchase recorded. No record is written when the payment call
// fails, and the unique index on (user_id, course_id) closes the window
// between the existence check and the insert.
func (s *purchaseService) BuyCourse(ctx context.Context, userID, courseID string) (*model.Course, string, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, "", fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, "", ErrCourseNotFound
	}

	purchased, err := s.purchaseRepo.HasPurchase(ctx, userID, courseID)
	if err != nil {
		return nil, "", fmt.Errorf("check purchase: %w", err)
	}
	if purchased {
		return nil, "", ErrAlreadyPurchased
	}

	intentCtx, cancel := context.WithTimeout(ctx, s.externalTimeout)
	defer cancel()
	amountCents := int64(math.Round(course.Price * 100))
	clientSecret, err := s.payments.CreateIntent(intentCtx, amountCents, s.currency)
	if err != nil {
		return nil, "", err
	}

	purchase := &model.Purchase{UserID: userID, CourseID: courseID}
	if err := s.purchaseRepo.CreatePurchase(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent request for the same pair won the race after our
			// existence check; the intent created here is left unconfirmed
			// and expires on the processor side.
			s.logger.Warn().Str("user_id", userID).Str("course_id", courseID).
				Msg("Concurrent duplicate purchase detected at insert")
			return nil, "", ErrAlreadyPurchased
		}
		s.logger.Error().Err(err).Str("user_id", userID).Str("course_id", courseID).
			Msg("Failed to record purchase after intent creation")
		return nil, "", fmt.Errorf("record purchase: %w", err)
	}

	return course, clientSecret, nil
}
