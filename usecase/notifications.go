package usecase

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"main/model"
	"main/services"
)

// NotificationDigest is the derived set of items needing attention:
// everything due by the end of the current local day and still pending.
type NotificationDigest struct {
	Todos         []*model.Todo `json:"todos"`
	OverdueCount  int           `json:"overdueCount"`
	DueTodayCount int           `json:"dueTodayCount"`
}

// DeriveNotifications recomputes the digest from the in-memory todo
// list. An item qualifies iff it has a due date, is not completed, and
// is due at or before the end of the current local calendar day; that
// covers overdue and due-today in one set, sorted ascending by due
// date.
func DeriveNotifications(todos []*model.Todo, now time.Time) *NotificationDigest {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999000000, now.Location())
	startOfToday := startOfDay(now)

	digest := &NotificationDigest{Todos: []*model.Todo{}}
	for _, todo := range todos {
		if todo.DueDate.IsZero() || todo.Completed {
			continue
		}
		if todo.DueDate.After(endOfDay) {
			continue
		}
		digest.Todos = append(digest.Todos, todo)

		if todo.DueDate.Before(now) {
			digest.OverdueCount++
		}
		if !todo.DueDate.Before(startOfToday) && !todo.DueDate.After(endOfDay) {
			digest.DueTodayCount++
		}
	}

	sort.Slice(digest.Todos, func(i, j int) bool {
		return digest.Todos[i].DueDate.Before(digest.Todos[j].DueDate)
	})

	return digest
}

// DedupStore remembers which todo IDs have already been surfaced this
// session, so a given item only toasts once. Implementations must
// survive a reload within the session (the redis store does; the
// memory store offers an explicit snapshot/restore contract).
type DedupStore interface {
	Seen(ctx context.Context, todoID string) (bool, error)
	MarkSeen(ctx context.Context, todoID string) error
}

// MemoryDedupStore is the in-process DedupStore.
type MemoryDedupStore struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

func NewMemoryDedupStore() *MemoryDedupStore {
	return &MemoryDedupStore{seen: make(map[string]struct{})}
}

func (s *MemoryDedupStore) Seen(_ context.Context, todoID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[todoID]
	return ok, nil
}

func (s *MemoryDedupStore) MarkSeen(_ context.Context, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[todoID] = struct{}{}
	return nil
}

// Snapshot returns the flagged IDs for persistence across a reload.
func (s *MemoryDedupStore) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Restore reloads previously flagged IDs.
func (s *MemoryDedupStore) Restore(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.seen[id] = struct{}{}
	}
}

// DedupStoreForSession picks the de-dup backing for one notification
// session: redis when a URL is configured, so the flagged set survives
// a restart within the TTL; in-process memory otherwise. A redis
// connection failure degrades to memory rather than blocking startup.
func DedupStoreForSession(redisURL, sessionID string, ttl time.Duration) DedupStore {
	if redisURL == "" {
		return NewMemoryDedupStore()
	}
	store, err := services.NewRedisDedupStore(redisURL, sessionID, ttl)
	if err != nil {
		log.Printf("redis dedup store unavailable, using in-memory store: %v", err)
		return NewMemoryDedupStore()
	}
	return store
}

// Toaster receives one-time due-item notifications.
type Toaster interface {
	Toast(todo *model.Todo, overdue bool)
}

// LogToaster writes toasts to the process log.
type LogToaster struct{}

func (LogToaster) Toast(todo *model.Todo, overdue bool) {
	if overdue {
		log.Printf("Task overdue: %s (was due %s)", todo.Title, todo.DueDate.Format("Jan 2 15:04"))
		return
	}
	log.Printf("Task due: %s (due %s)", todo.Title, todo.DueDate.Format("Jan 2 15:04"))
}

// NotificationPoller re-evaluates the todo list on a fixed interval and
// toasts each newly due item exactly once per session.
type NotificationPoller struct {
	Fetch    func(ctx context.Context) ([]*model.Todo, error)
	Store    DedupStore
	Toaster  Toaster
	Interval time.Duration
	Now      func() time.Time
}

func NewNotificationPoller(fetch func(ctx context.Context) ([]*model.Todo, error), store DedupStore, toaster Toaster) *NotificationPoller {
	return &NotificationPoller{
		Fetch:    fetch,
		Store:    store,
		Toaster:  toaster,
		Interval: 60 * time.Second,
		Now:      time.Now,
	}
}

// Run checks once immediately, then on every tick until ctx is
// cancelled. Cancelling releases the timer; nothing leaks.
func (p *NotificationPoller) Run(ctx context.Context) {
	p.Check(ctx)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Check toasts every pending item that is already due and has not been
// surfaced this session.
func (p *NotificationPoller) Check(ctx context.Context) {
	todos, err := p.Fetch(ctx)
	if err != nil {
		log.Printf("notification check failed: %v", err)
		return
	}

	now := p.Now()
	for _, todo := range todos {
		if todo.DueDate.IsZero() || todo.Completed || todo.DueDate.After(now) {
			continue
		}

		seen, err := p.Store.Seen(ctx, todo.TodoID)
		if err != nil {
			log.Printf("notification dedup lookup failed: %v", err)
			continue
		}
		if seen {
			continue
		}

		p.Toaster.Toast(todo, todo.DueDate.Before(now))
		if err := p.Store.MarkSeen(ctx, todo.TodoID); err != nil {
			log.Printf("notification dedup mark failed: %v", err)
		}
	}
}
