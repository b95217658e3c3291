package handler

import (
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// PurchaseHandler handles the course purchase endpoint.
type PurchaseHandler struct {
	purchaseService service.PurchaseService
	logger          zerolog.Logger
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService service.PurchaseService, logger zerolog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		logger:          logger.With().Str("handler", "PurchaseHandler").Logger(),
	}
}

// RegisterRoutes mounts the purchase route behind the user auth middleware.
func (h *PurchaseHandler) RegisterRoutes(mux *http.ServeMux, userMw func(http.Handler) http.Handler) {
	mux.Handle("POST /courses/{courseId}/buy", userMw(http.HandlerFunc(h.buyCourse)))
}

func (h *PurchaseHandler) buyCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	courseID := r.PathValue("courseId")

	course, clientSecret, err := h.purchaseService.BuyCourse(r.Context(), userID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			writeError(w, http.StatusNotFound, "Course not found")
		case errors.Is(err, service.ErrAlreadyPurchased):
			writeError(w, http.StatusBadRequest, "User has already purchased this course")
		case errors.Is(err, service.ErrPaymentFailed):
			writeError(w, http.StatusBadRequest, "Error in creating payment intent")
		default:
			h.logger.Error().Err(err).Str("course_id", courseID).Msg("Error in course buying")
			writeError(w, http.StatusInternalServerError, "Error in course buying")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.PurchaseResponseDTO{
		Message:      "Course purchased successfully",
		Course:       toCourseDTO(course),
		ClientSecret: clientSecret,
	})
}
