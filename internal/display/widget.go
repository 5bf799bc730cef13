package display

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"simple-note/internal/pkg/logger"
	"simple-note/pkg/client"
)

type NotesSource interface {
	ListNotes(ctx context.Context) ([]client.Note, error)
}

// Widget polls the notes API and redraws on every fetch. It only ever keeps
// the latest snapshot and never writes to the API.
type Widget struct {
	cfg    Config
	source NotesSource
	out    io.Writer
	clear  bool
	logger logger.ILogger

	mu     sync.Mutex
	notes  []client.Note
	loaded bool

	trigger chan struct{}
}

type Option func(*Widget)

// WithClearScreen emits an ANSI clear before each frame.
func WithClearScreen() Option {
	return func(w *Widget) { w.clear = true }
}

func NewWidget(cfg Config, source NotesSource, out io.Writer, log logger.ILogger, opts ...Option) *Widget {
	w := &Widget{
		cfg:     cfg,
		source:  source,
		out:     out,
		logger:  log,
		trigger: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Refresh fetches once. A failed fetch keeps the previous snapshot but still
// marks the widget loaded, so the first failure shows "No notes".
func (w *Widget) Refresh(ctx context.Context) {
	notes, err := w.source.ListNotes(ctx)

	w.mu.Lock()
	if err != nil {
		w.logger.Error("Display", "Error fetching notes", map[string]interface{}{"error": err})
	} else {
		if len(notes) > w.cfg.MaxNotes {
			notes = notes[:w.cfg.MaxNotes]
		}
		w.notes = notes
	}
	w.loaded = true
	w.mu.Unlock()

	w.draw()
}

// Trigger requests an immediate refresh from the Run loop. Requests made
// while one is already pending are merged.
func (w *Widget) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Widget) View() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Render(w.notes, w.loaded, w.cfg.ShowTitle)
}

func (w *Widget) Loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded
}

// Run draws the loading frame, fetches immediately, then on every tick or
// trigger until ctx is cancelled.
func (w *Widget) Run(ctx context.Context) error {
	w.draw()
	w.Refresh(ctx)

	ticker := time.NewTicker(w.cfg.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Refresh(ctx)
		case <-w.trigger:
			w.Refresh(ctx)
		}
	}
}

func (w *Widget) draw() {
	frame := w.View()
	if w.clear {
		frame = "\033[H\033[2J" + frame
	}
	if _, err := fmt.Fprintln(w.out, frame); err != nil {
		w.logger.Warn("Display", "Failed to write frame", map[string]interface{}{"error": err})
	}
}
