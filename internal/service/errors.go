package service

import "errors"

// Domain outcomes surfaced to the handler layer, which maps them to
// HTTP status codes.
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrNotCourseOwner       = errors.New("course belongs to a different creator")
	ErrAlreadyPurchased     = errors.New("course already purchased")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrUploadFailed         = errors.New("image upload failed")
	ErrPaymentFailed        = errors.New("payment intent creation failed")
)
