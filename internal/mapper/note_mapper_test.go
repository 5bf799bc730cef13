package mapper

import (
	"testing"
	"time"

	"simple-note/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestToColumnsOnlyIncludesSetFields(t *testing.T) {
	m := NewNoteMapper()
	now := time.Now()

	cols := m.ToColumns(entity.NoteChanges{SetContent: true, Content: "hi", UpdatedAt: now})
	assert.Equal(t, map[string]interface{}{"content": "hi", "updated_at": now}, cols)

	cols = m.ToColumns(entity.NoteChanges{SetTitle: true, UpdatedAt: now})
	assert.Contains(t, cols, "title")
	assert.Nil(t, cols["title"])
	assert.NotContains(t, cols, "content")
}

func TestToResponsesKeepsEmptySliceNonNil(t *testing.T) {
	res := NewNoteMapper().ToResponses(nil)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}
