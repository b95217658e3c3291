package service

import (
	"context"
	"fmt"
	"sync"

	"app/internal/model"
	"app/internal/repository"
)

// fakeCourseRepo is an in-memory CourseRepository.
type fakeCourseRepo struct {
	mu      sync.Mutex
	nextID  int
	courses map[string]model.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]model.Course)}
}

func (f *fakeCourseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = fmt.Sprintf("course-%d", f.nextID)
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeCourseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[courseID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCourseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseRepo) UpdateCourseOwned(ctx context.Context, c *model.Course, creatorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.courses[c.ID]
	if !ok || existing.CreatorID != creatorID {
		return repository.ErrNoRowsAffected
	}
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeCourseRepo) DeleteCourseOwned(ctx context.Context, courseID, creatorID string) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.courses[courseID]
	if !ok || existing.CreatorID != creatorID {
		return nil, repository.ErrNoRowsAffected
	}
	delete(f.courses, courseID)
	return &existing, nil
}

// fakePurchaseRepo is an in-memory PurchaseRepository keyed on the
// (user, course) pair, mirroring the unique index.
type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]model.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]model.Purchase)}
}

func purchaseKey(userID, courseID string) string {
	return userID + "/" + courseID
}

func (f *fakePurchaseRepo) CreatePurchase(ctx context.Context, p *model.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := purchaseKey(p.UserID, p.CourseID)
	if _, ok := f.purchases[key]; ok {
		return repository.ErrDuplicate
	}
	p.ID = "purchase-" + key
	f.purchases[key] = *p
	return nil
}

func (f *fakePurchaseRepo) HasPurchase(ctx context.Context, userID, courseID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.purchases[purchaseKey(userID, courseID)]
	return ok, nil
}

// fakeUploader records upload invocations.
type fakeUploader struct {
	calls int
	fail  bool
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType string) (model.ImageRef, error) {
	f.calls++
	if f.fail {
		return model.ImageRef{}, ErrUploadFailed
	}
	return model.ImageRef{
		PublicID: fmt.Sprintf("courses/fake-%d", f.calls),
		URL:      fmt.Sprintf("https://assets.test/bucket/courses/fake-%d", f.calls),
	}, nil
}

// fakePayments records intent creations.
type fakePayments struct {
	calls      int
	lastAmount int64
	lastCurr   string
	fail       bool
}

func (f *fakePayments) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	f.calls++
	f.lastAmount = amountCents
	f.lastCurr = currency
	if f.fail {
		return "", ErrPaymentFailed
	}
	return "pi_fake_secret", nil
}
