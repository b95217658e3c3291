package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// maxImageFormBytes caps the multipart form held in memory.
const maxImageFormBytes = 10 << 20

// CourseHandler handles course-related endpoints.
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validate:      validate,
		logger:        logger.With().Str("handler", "CourseHandler").Logger(),
	}
}

// RegisterRoutes mounts course routes. Reads are public; mutations go
// through the admin auth middleware.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, adminMw func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /courses", h.listCourses)
	mux.HandleFunc("GET /courses/{courseId}", h.getCourse)
	mux.Handle("POST /courses", adminMw(http.HandlerFunc(h.createCourse)))
	mux.Handle("PUT /courses/{courseId}", adminMw(http.HandlerFunc(h.updateCourse)))
	mux.Handle("DELETE /courses/{courseId}", adminMw(http.HandlerFunc(h.deleteCourse)))
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	if err := r.ParseMultipartForm(maxImageFormBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	req := dto.CourseCreateDTO{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if rawPrice := r.FormValue("price"); rawPrice != "" {
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Price must be a number")
			return
		}
		req.Price = price
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	data, contentType, ok := h.readImageFile(w, r, true)
	if !ok {
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), service.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageData:   data,
		ImageType:   contentType,
		CreatorID:   adminID,
	})
	if err != nil {
		h.writeCourseError(w, err, "Error in creating course")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Course created successfully",
		"course":  toCourseDTO(course),
	})
}

func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	courseID := r.PathValue("courseId")

	if err := r.ParseMultipartForm(maxImageFormBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var req dto.CourseUpdateDTO
	if values, present := r.MultipartForm.Value["title"]; present && len(values) > 0 {
		req.Title = &values[0]
	}
	if values, present := r.MultipartForm.Value["description"]; present && len(values) > 0 {
		req.Description = &values[0]
	}
	if values, present := r.MultipartForm.Value["price"]; present && len(values) > 0 {
		price, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Price must be a number")
			return
		}
		req.Price = &price
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	data, contentType, ok := h.readImageFile(w, r, false)
	if !ok {
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), courseID, adminID, service.UpdateCoursePatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageData:   data,
		ImageType:   contentType,
	})
	if err != nil {
		h.writeCourseError(w, err, "Error in course updating")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Course updated successfully",
		"course":  toCourseDTO(course),
	})
}

func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	courseID := r.PathValue("courseId")

	if _, err := h.courseService.DeleteCourse(r.Context(), courseID, adminID); err != nil {
		h.writeCourseError(w, err, "Error in course deleting")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Course deleted successfully",
	})
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list courses")
		writeError(w, http.StatusInternalServerError, "Error in get courses")
		return
	}

	out := make([]dto.CourseResponseDTO, 0, len(courses))
	for i := range courses {
		out = append(out, toCourseDTO(&courses[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": out})
}

func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseId")

	course, err := h.courseService.GetCourseByID(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "Course not found")
			return
		}
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to get course")
		writeError(w, http.StatusInternalServerError, "Error in course details")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"course": toCourseDTO(course)})
}

// readImageFile extracts the uploaded image from the form. When required
// is false a missing file is fine and the stored reference is kept. The
// boolean result reports whether the caller should continue.
func (h *CourseHandler) readImageFile(w http.ResponseWriter, r *http.Request, required bool) ([]byte, string, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if !required && errors.Is(err, http.ErrMissingFile) {
			return nil, "", true
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return nil, "", false
	}
	return data, header.Header.Get("Content-Type"), true
}

// writeCourseError maps domain outcomes from the course service to
// HTTP responses. Unexpected errors get a generic message; detail stays
// in the server log.
func (h *CourseHandler) writeCourseError(w http.ResponseWriter, err error, internalMsg string) {
	switch {
	case errors.Is(err, service.ErrUnsupportedImageType):
		writeError(w, http.StatusBadRequest, "Invalid file format. Only PNG and JPEG are allowed")
	case errors.Is(err, service.ErrUploadFailed):
		writeError(w, http.StatusBadRequest, "Error uploading image")
	case errors.Is(err, service.ErrCourseNotFound):
		writeError(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, service.ErrNotCourseOwner):
		writeError(w, http.StatusForbidden, "You can't modify this course")
	default:
		h.logger.Error().Err(err).Msg(internalMsg)
		writeError(w, http.StatusInternalServerError, internalMsg)
	}
}
