package model

import "time"

// ImageRef points at a course image stored on the object store.
type ImageRef struct {
	PublicID string `db:"image_public_id" json:"public_id"`
	URL      string `db:"image_url" json:"url"`
}

// Course represents a sellable course in the catalog.
type Course struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Image       ImageRef  `json:"image"`
	CreatorID   string    `db:"creator_id" json:"creator_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
