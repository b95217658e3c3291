package dto

import "time"

// ImageRefDTO mirrors the stored image reference.
type ImageRefDTO struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// CourseCreateDTO is assembled from the multipart form of a creation request.
type CourseCreateDTO struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// CourseUpdateDTO carries optional replacements; absent fields keep the
// stored values.
type CourseUpdateDTO struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

// CourseResponseDTO is returned in API responses for courses.
type CourseResponseDTO struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Image       ImageRefDTO `json:"image"`
	CreatorID   string      `json:"creator_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
