package cancel_booking

// CancelBookingRequest is the HTTP request body.
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse confirms the cancellation.
type CancelBookingResponse struct {
	BookingReference string `json:"bookingReference"`
	Status           string `json:"status"`
}
