package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"simple-note/internal/dto"
	"simple-note/internal/model"
	"simple-note/internal/pkg/apperror"
	"simple-note/internal/pkg/logger"
	"simple-note/internal/repository/memory"
	"simple-note/internal/repository/unitofwork"
	"simple-note/pkg/database"
	"simple-note/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.EventType()
	}
	return out
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewInMemoryDB(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestNoteService(t *testing.T, db *gorm.DB, cache *memory.NoteListCache) (*noteService, *fakePublisher) {
	t.Helper()
	pub := &fakePublisher{}
	svc := NewNoteService(unitofwork.NewRepositoryFactory(db), cache, pub, logger.NewNopLogger()).(*noteService)

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, pub
}

func strPtr(s string) *string { return &s }

func setField(v *string) dto.OptionalString { return dto.OptionalString{Set: true, Value: v} }

func TestNoteService_CreateNormalizes(t *testing.T) {
	svc, pub := newTestNoteService(t, setupDB(t), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Content: strPtr(" hi ")})
	require.NoError(t, err)
	assert.Equal(t, "hi", created.Content)
	assert.Nil(t, created.Title)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	shown, err := svc.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "hi", shown.Content)
	assert.Nil(t, shown.Title)

	blankTitle, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: strPtr("   "), Content: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, blankTitle.Title)

	assert.Equal(t, []string{events.NoteCreated, events.NoteCreated}, pub.types())
}

func TestNoteService_CreateRejectsBlankContent(t *testing.T) {
	svc, pub := newTestNoteService(t, setupDB(t), nil)

	for _, content := range []*string{nil, strPtr(""), strPtr("   ")} {
		_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: content})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	}
	assert.Empty(t, pub.types())
}

func TestNoteService_ListLatestFirst(t *testing.T) {
	svc, _ := newTestNoteService(t, setupDB(t), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, &dto.CreateNoteRequest{Content: strPtr("first")})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &dto.CreateNoteRequest{Content: strPtr("second")})
	require.NoError(t, err)

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.Id, notes[0].Id)
	assert.Equal(t, first.Id, notes[1].Id)
}

func TestNoteService_UpdateIsPartial(t *testing.T) {
	svc, pub := newTestNoteService(t, setupDB(t), nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: strPtr("Groceries"), Content: strPtr("buy milk")})
	require.NoError(t, err)

	onlyContent, err := svc.Update(ctx, &dto.UpdateNoteRequest{Id: note.Id, Content: setField(strPtr(" buy bread "))})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", *onlyContent.Title)
	assert.Equal(t, "buy bread", onlyContent.Content)
	assert.True(t, onlyContent.UpdatedAt.After(onlyContent.CreatedAt))
	assert.True(t, note.CreatedAt.Equal(onlyContent.CreatedAt))

	onlyTitle, err := svc.Update(ctx, &dto.UpdateNoteRequest{Id: note.Id, Title: setField(strPtr("Shopping"))})
	require.NoError(t, err)
	assert.Equal(t, "Shopping", *onlyTitle.Title)
	assert.Equal(t, "buy bread", onlyTitle.Content)

	cleared, err := svc.Update(ctx, &dto.UpdateNoteRequest{Id: note.Id, Title: setField(nil)})
	require.NoError(t, err)
	assert.Nil(t, cleared.Title)
	assert.Equal(t, "buy bread", cleared.Content)

	assert.Equal(t, []string{events.NoteCreated, events.NoteUpdated, events.NoteUpdated, events.NoteUpdated}, pub.types())
}

func TestNoteService_UpdateRejectsEmptyContent(t *testing.T) {
	svc, _ := newTestNoteService(t, setupDB(t), nil)
	ctx := context.Background()
	note, err := svc.Create(ctx, &dto.CreateNoteRequest{Content: strPtr("keep")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, &dto.UpdateNoteRequest{Id: note.Id, Content: setField(strPtr("  "))})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Update(ctx, &dto.UpdateNoteRequest{Id: note.Id, Content: setField(nil)})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	shown, err := svc.Show(ctx, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "keep", shown.Content)
}

func TestNoteService_NotFound(t *testing.T) {
	svc, pub := newTestNoteService(t, setupDB(t), nil)
	ctx := context.Background()

	_, err := svc.Show(ctx, 123)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Update(ctx, &dto.UpdateNoteRequest{Id: 123, Content: setField(strPtr("x"))})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 123), apperror.ErrNotFound)
	assert.Empty(t, pub.types())
}

func TestNoteService_DeleteThenShow(t *testing.T) {
	svc, pub := newTestNoteService(t, setupDB(t), nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, &dto.CreateNoteRequest{Content: strPtr("temp")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, note.Id))

	_, err = svc.Show(ctx, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, []string{events.NoteCreated, events.NoteDeleted}, pub.types())
}

func TestNoteService_ListCacheInvalidatedOnWrite(t *testing.T) {
	svc, _ := newTestNoteService(t, setupDB(t), memory.NewNoteListCache(time.Minute))
	ctx := context.Background()

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = svc.Create(ctx, &dto.CreateNoteRequest{Content: strPtr("fresh")})
	require.NoError(t, err)

	notes, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "fresh", notes[0].Content)
}

func TestNoteService_StoreUnavailable(t *testing.T) {
	db := setupDB(t)
	svc, _ := newTestNoteService(t, db, nil)
	require.NoError(t, database.Close(db))
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "Failed to fetch notes", appErr.Message)

	_, err = svc.Create(ctx, &dto.CreateNoteRequest{Content: strPtr("x")})
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)

	_, err = svc.Update(ctx, &dto.UpdateNoteRequest{Id: 1, Content: setField(strPtr("x"))})
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)

	assert.ErrorIs(t, svc.Delete(ctx, 1), apperror.ErrStoreUnavailable)
}

func TestNoteService_PublishFailureDoesNotFailWrite(t *testing.T) {
	svc, pub := newTestNoteService(t, setupDB(t), nil)
	pub.err = errors.New("bus down")

	note, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Content: strPtr("still saved")})
	require.NoError(t, err)
	assert.NotZero(t, note.Id)
}
