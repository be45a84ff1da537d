package models

// TokenRegisterRequest is the request body for registering a push token.
type TokenRegisterRequest struct {
	Token string `json:"token"`
}

// TokenRegisterResponse reports the outcome of a registration attempt.
// Success is false for the soft-duplicate case.
type TokenRegisterResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
