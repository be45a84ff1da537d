package models

// TelegramSendRequest is the request body for relaying a message to the
// configured Telegram chat.
type TelegramSendRequest struct {
	Message string `json:"message"`
}

// TelegramSendResponse acknowledges a relayed message.
type TelegramSendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
