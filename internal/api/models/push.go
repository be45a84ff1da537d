package models

// PushSendRequest is the request body for broadcasting a push notification.
// RedirectURL is a dashboard path such as "/mobile"; the server prefixes the
// configured public base URL to form the click-through deep link.
type PushSendRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	RedirectURL string `json:"redirectUrl"`
}

// PushOutcome is the provider's per-token delivery result, in token order.
type PushOutcome struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// PushSendResponse reports one multicast delivery.
type PushSendResponse struct {
	Message      string        `json:"message"`
	SuccessCount int           `json:"successCount"`
	FailureCount int           `json:"failureCount"`
	Responses    []PushOutcome `json:"responses"`
}

// ErrorEnvelope is the best-effort diagnostic body returned when a provider
// call fails outright.
type ErrorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
