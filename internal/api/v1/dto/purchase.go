package dto

// PurchaseResponseDTO is returned after a successful purchase. The client
// secret feeds the client-side payment confirmation step.
type PurchaseResponseDTO struct {
	Message      string            `json:"message"`
	Course       CourseResponseDTO `json:"course"`
	ClientSecret string            `json:"clientSecret"`
}
