package model

// Response is the envelope for every HTTP reply from the serve mode.
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Message string      `json:"message"`
}

// ErrorResponse builds an error envelope with the given user message.
func ErrorResponse(msg string) Response {
	return Response{Error: &msg, Message: "Error"}
}
