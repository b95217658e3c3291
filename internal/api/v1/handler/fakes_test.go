package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"app/internal/logger"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/util"

	"github.com/go-playground/validator/v10"
)

const (
	adminSecret = "admin-secret"
	userSecret  = "user-secret"
	testTimeout = 5 * time.Second
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

// fakePurchaseRepo is an in-memory PurchaseRepository.
type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]model.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]model.Purchase)}
}

func (f *fakePurchaseRepo) CreatePurchase(ctx context.Context, p *model.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := p.UserID + "/" + p.CourseID
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
	_, ok := f.purchases[userID+"/"+courseID]
	return ok, nil
}

// fakeUploader records upload invocations.
type fakeUploader struct {
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType string) (model.ImageRef, error) {
	f.calls++
	return model.ImageRef{
		PublicID: fmt.Sprintf("courses/fake-%d", f.calls),
		URL:      fmt.Sprintf("https://assets.test/bucket/courses/fake-%d", f.calls),
	}, nil
}

// fakePayments records intent creations.
type fakePayments struct {
	calls int
	fail  bool
}

func (f *fakePayments) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	f.calls++
	if f.fail {
		return "", service.ErrPaymentFailed
	}
	return "pi_fake_secret", nil
}

// testEnv wires real handlers, services and middleware over in-memory fakes.
type testEnv struct {
	mux          *http.ServeMux
	courseRepo   *fakeCourseRepo
	purchaseRepo *fakePurchaseRepo
	uploader     *fakeUploader
	payments     *fakePayments
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.New()
	validate := validator.New(validator.WithRequiredStructEnabled())

	env := &testEnv{
		mux:          http.NewServeMux(),
		courseRepo:   newFakeCourseRepo(),
		purchaseRepo: newFakePurchaseRepo(),
		uploader:     &fakeUploader{},
		payments:     &fakePayments{},
	}

	courseSvc := service.NewCourseService(env.courseRepo, env.uploader, testTimeout, log)
	purchaseSvc := service.NewPurchaseService(env.courseRepo, env.purchaseRepo, env.payments, "usd", testTimeout, log)

	NewCourseHandler(courseSvc, validate, log).RegisterRoutes(env.mux, middleware.Auth(adminSecret, log))
	NewPurchaseHandler(purchaseSvc, log).RegisterRoutes(env.mux, middleware.Auth(userSecret, log))
	return env
}

func adminToken(t *testing.T, adminID string) string {
	t.Helper()
	token, err := util.SignJWT(adminID, adminSecret, time.Hour)
	if err != nil {
		t.Fatalf("signing admin token failed: %v", err)
	}
	return token
}

func userToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := util.SignJWT(userID, userSecret, time.Hour)
	if err != nil {
		t.Fatalf("signing user token failed: %v", err)
	}
	return token
}

// courseForm builds a multipart body from field values plus an optional
// image part with the given declared content type.
func courseForm(t *testing.T, fields map[string]string, imageType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing form field %s failed: %v", k, err)
		}
	}
	if imageType != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="cover"`)
		header.Set("Content-Type", imageType)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("creating image part failed: %v", err)
		}
		if _, err := io.WriteString(part, "fake image bytes"); err != nil {
			t.Fatalf("writing image part failed: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer failed: %v", err)
	}
	return &body, mw.FormDataContentType()
}
