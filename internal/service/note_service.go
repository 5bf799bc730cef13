package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"simple-note/internal/dto"
	"simple-note/internal/entity"
	"simple-note/internal/mapper"
	"simple-note/internal/pkg/apperror"
	"simple-note/internal/pkg/logger"
	"simple-note/internal/repository/contract"
	"simple-note/internal/repository/memory"
	"simple-note/internal/repository/specification"
	"simple-note/internal/repository/unitofwork"
	"simple-note/pkg/events"
)

const (
	msgNoteNotFound   = "Note not found"
	msgContentMissing = "Content is required"
	msgContentEmpty   = "Content cannot be empty"
	msgFetchNotes     = "Failed to fetch notes"
	msgFetchNote      = "Failed to fetch note"
	msgCreateNote     = "Failed to create note"
	msgUpdateNote     = "Failed to update note"
	msgDeleteNote     = "Failed to delete note"
)

type INoteService interface {
	List(ctx context.Context) ([]dto.NoteResponse, error)
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, id int64) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id int64) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	listCache  *memory.NoteListCache
	publisher  IPublisherService
	mapper     *mapper.NoteMapper
	logger     logger.ILogger
	now        func() time.Time
}

// NewNoteService wires the note use cases. listCache and publisher may be nil.
func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	listCache *memory.NoteListCache,
	publisher IPublisherService,
	logger logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		listCache:  listCache,
		publisher:  publisher,
		mapper:     mapper.NewNoteMapper(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// normalizeTitle trims the title and maps empty to nil.
func normalizeTitle(title *string) *string {
	if title == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*title)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *noteService) List(ctx context.Context) ([]dto.NoteResponse, error) {
	if notes, ok := s.listCache.Get(); ok {
		return s.mapper.ToResponses(notes), nil
	}

	generation := s.listCache.Generation()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specification.LatestFirst{})
	if err != nil {
		return nil, apperror.StoreUnavailable(msgFetchNotes, err)
	}
	s.listCache.Store(generation, notes)

	return s.mapper.ToResponses(notes), nil
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
		return nil, apperror.Validation(msgContentMissing)
	}

	now := s.now()
	note := entity.Note{
		Title:     normalizeTitle(req.Title),
		Content:   strings.TrimSpace(*req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, apperror.StoreUnavailable(msgCreateNote, err)
	}
	s.listCache.Invalidate()

	res := s.mapper.ToResponse(&note)
	s.publish(ctx, events.NoteCreated, map[string]interface{}{"id": note.Id, "note": res})

	return res, nil
}

func (s *noteService) Show(ctx context.Context, id int64) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		if errors.Is(err, contract.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgNoteNotFound)
		}
		return nil, apperror.StoreUnavailable(msgFetchNote, err)
	}

	return s.mapper.ToResponse(note), nil
}

// Update applies only the supplied fields. The write and the re-read share a
// transaction so the response reflects this update, not a later one.
func (s *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	changes := entity.NoteChanges{UpdatedAt: s.now()}

	if req.Title.Set {
		changes.SetTitle = true
		changes.Title = normalizeTitle(req.Title.Value)
	}
	if req.Content.Set {
		if req.Content.Value == nil || strings.TrimSpace(*req.Content.Value) == "" {
			return nil, apperror.Validation(msgContentEmpty)
		}
		changes.SetContent = true
		changes.Content = strings.TrimSpace(*req.Content.Value)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.StoreUnavailable(msgUpdateNote, err)
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Update(ctx, req.Id, changes); err != nil {
		if errors.Is(err, contract.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgNoteNotFound)
		}
		return nil, apperror.StoreUnavailable(msgUpdateNote, err)
	}

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.StoreUnavailable(msgUpdateNote, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.StoreUnavailable(msgUpdateNote, err)
	}
	s.listCache.Invalidate()

	res := s.mapper.ToResponse(note)
	s.publish(ctx, events.NoteUpdated, map[string]interface{}{"id": note.Id, "note": res})

	return res, nil
}

func (s *noteService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		if errors.Is(err, contract.ErrRecordNotFound) {
			return apperror.NotFound(msgNoteNotFound)
		}
		return apperror.StoreUnavailable(msgDeleteNote, err)
	}
	s.listCache.Invalidate()

	s.publish(ctx, events.NoteDeleted, map[string]interface{}{"id": id})

	return nil
}

// publish is best effort: the write already succeeded.
func (s *noteService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	evt := events.New(eventType, data)
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("NoteService", "Failed to publish note event", map[string]interface{}{
			"event_type": eventType,
			"error":      err,
		})
	}
}
