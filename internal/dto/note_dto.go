package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

type CreateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content" validate:"required,notblank" errmsg:"Content is required"`
}

// OptionalString tells an absent JSON key apart from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

type UpdateNoteRequest struct {
	Id      int64          `json:"-"`
	Title   OptionalString `json:"title"`
	Content OptionalString `json:"content" errmsg:"Content cannot be empty"`
}

type NoteResponse struct {
	Id        int64     `json:"id"`
	Title     *string   `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
