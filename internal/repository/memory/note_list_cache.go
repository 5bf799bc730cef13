package memory

import (
	"sync"
	"time"

	"simple-note/internal/entity"

	"github.com/patrickmn/go-cache"
)

const listKey = "notes:latest"

// NoteListCache holds the last full note listing. Every write invalidates it
// and bumps a generation counter, so a listing read before the write can
// never be stored after it. A nil *NoteListCache is a valid, disabled cache.
type NoteListCache struct {
	cache      *cache.Cache
	mu         sync.Mutex
	generation uint64
}

// NewNoteListCache returns nil when ttl is not positive.
func NewNoteListCache(ttl time.Duration) *NoteListCache {
	if ttl <= 0 {
		return nil
	}
	return &NoteListCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *NoteListCache) Get() ([]*entity.Note, bool) {
	if c == nil {
		return nil, false
	}
	if x, found := c.cache.Get(listKey); found {
		notes := x.([]*entity.Note)
		out := make([]*entity.Note, len(notes))
		copy(out, notes)
		return out, true
	}
	return nil, false
}

func (c *NoteListCache) Generation() uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Store caches notes only if no invalidation happened since generation was read.
func (c *NoteListCache) Store(generation uint64, notes []*entity.Note) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.cache.Set(listKey, notes, cache.DefaultExpiration)
	return true
}

func (c *NoteListCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Delete(listKey)
}
