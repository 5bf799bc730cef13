package mapper

import (
	"simple-note/internal/dto"
	"simple-note/internal/entity"
	"simple-note/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

// ToColumns builds the column map for a partial update. A map is used
// instead of a struct so that a nil title is written as NULL.
func (m *NoteMapper) ToColumns(changes entity.NoteChanges) map[string]interface{} {
	columns := map[string]interface{}{
		"updated_at": changes.UpdatedAt,
	}
	if changes.SetTitle {
		columns["title"] = changes.Title
	}
	if changes.SetContent {
		columns["content"] = changes.Content
	}
	return columns
}

func (m *NoteMapper) ToResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}

	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToResponses(notes []*entity.Note) []dto.NoteResponse {
	res := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, *m.ToResponse(n))
	}
	return res
}
