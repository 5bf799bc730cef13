package contract

import (
	"context"
	"errors"

	"simple-note/internal/entity"
	"simple-note/internal/repository/specification"
)

// ErrRecordNotFound is returned when a lookup or mutation matches no row.
var ErrRecordNotFound = errors.New("record not found")

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, id int64, changes entity.NoteChanges) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
