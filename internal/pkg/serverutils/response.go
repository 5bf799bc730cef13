package serverutils

// BaseResponse is the envelope for every non-note payload. Note resources
// are written bare so that polling clients can decode them directly.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse[T any](data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		Success: true,
		Data:    &data,
	}
}

func AckResponse() *BaseResponse[any] {
	return &BaseResponse[any]{Success: true}
}

func ErrorResponse(message string) *BaseResponse[any] {
	return &BaseResponse[any]{
		Success: false,
		Error:   message,
	}
}
