package entity

import "time"

type Note struct {
	Id        int64
	Title     *string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteChanges is a partial update. Only fields whose Set flag is true are
// written; a set Title of nil clears the column.
type NoteChanges struct {
	SetTitle   bool
	Title      *string
	SetContent bool
	Content    string
	UpdatedAt  time.Time
}
