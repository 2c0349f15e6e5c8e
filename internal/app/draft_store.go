package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// Draft is a working quote in its editable phase, owned by one user.
type Draft struct {
	ID        string
	UserID    string
	Quote     *domain.WorkingQuote
	CreatedAt time.Time
	UpdatedAt time.Time

	submitting bool
}

// DraftStore keeps drafts in memory. Drafts idle for longer than the TTL
// are dropped. All access to a draft's working quote happens under the
// store lock.
type DraftStore struct {
	mu         sync.Mutex
	drafts     map[string]*Draft
	ttl        time.Duration
	maxPerUser int
	now        func() time.Time
	onResize   func(n int)
}

// DraftStoreOption configures a DraftStore.
type DraftStoreOption func(*DraftStore)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) DraftStoreOption {
	return func(s *DraftStore) { s.now = now }
}

// WithSizeObserver is called with the draft count after every change.
func WithSizeObserver(fn func(n int)) DraftStoreOption {
	return func(s *DraftStore) { s.onResize = fn }
}

// NewDraftStore creates a store. A zero ttl keeps drafts forever and a zero
// maxPerUser means no limit.
func NewDraftStore(ttl time.Duration, maxPerUser int, opts ...DraftStoreOption) *DraftStore {
	s := &DraftStore{
		drafts:     make(map[string]*Draft),
		ttl:        ttl,
		maxPerUser: maxPerUser,
		now:        time.Now,
		onResize:   func(int) {},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create opens an empty draft for userID.
func (s *DraftStore) Create(userID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	if s.maxPerUser > 0 && s.countLocked(userID) >= s.maxPerUser {
		return nil, domain.NewConflictError("quote draft", "draft limit reached")
	}

	now := s.now()
	d := &Draft{
		ID:        uuid.NewString(),
		UserID:    userID,
		Quote:     domain.NewWorkingQuote(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.drafts[d.ID] = d
	s.onResize(len(s.drafts))

	return d, nil
}

// View runs fn against a draft without touching its idle clock.
func (s *DraftStore) View(userID, id string, fn func(*Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookupLocked(userID, id)
	if err != nil {
		return err
	}

	return fn(d)
}

// Update runs fn against a draft and refreshes its idle clock. Drafts being
// submitted cannot be changed.
func (s *DraftStore) Update(userID, id string, fn func(*Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookupLocked(userID, id)
	if err != nil {
		return err
	}

	if d.submitting {
		return domain.NewConflictError("quote draft", "submission in progress")
	}

	prev := d.UpdatedAt
	d.UpdatedAt = s.now()

	if err := fn(d); err != nil {
		d.UpdatedAt = prev

		return err
	}

	return nil
}

// Delete removes a draft.
func (s *DraftStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookupLocked(userID, id)
	if err != nil {
		return err
	}

	if d.submitting {
		return domain.NewConflictError("quote draft", "submission in progress")
	}

	delete(s.drafts, id)
	s.onResize(len(s.drafts))

	return nil
}

// BeginSubmit freezes a draft for submission. fn runs under the lock and
// should copy what the submission needs.
func (s *DraftStore) BeginSubmit(userID, id string, fn func(*Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookupLocked(userID, id)
	if err != nil {
		return err
	}

	if d.submitting {
		return domain.NewConflictError("quote draft", "submission in progress")
	}

	if err := fn(d); err != nil {
		return err
	}

	d.submitting = true

	return nil
}

// EndSubmit releases a frozen draft. A successful submission removes it,
// a failed one makes it editable again.
func (s *DraftStore) EndSubmit(id string, submitted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return
	}

	if submitted {
		delete(s.drafts, id)
		s.onResize(len(s.drafts))

		return
	}

	d.submitting = false
	d.UpdatedAt = s.now()
}

// Len returns the number of live drafts.
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.drafts)
}

// Sweep drops expired drafts and returns how many were removed.
func (s *DraftStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sweepLocked()
}

// Run sweeps every interval until ctx is done.
func (s *DraftStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *DraftStore) lookupLocked(userID, id string) (*Draft, error) {
	d, ok := s.drafts[id]
	if !ok || d.UserID != userID {
		return nil, domain.NewNotFoundError("quote draft", id)
	}

	if s.expiredLocked(d) {
		delete(s.drafts, id)
		s.onResize(len(s.drafts))

		return nil, domain.NewNotFoundError("quote draft", id)
	}

	return d, nil
}

func (s *DraftStore) expiredLocked(d *Draft) bool {
	return s.ttl > 0 && !d.submitting && s.now().Sub(d.UpdatedAt) > s.ttl
}

func (s *DraftStore) sweepLocked() int {
	removed := 0

	for id, d := range s.drafts {
		if s.expiredLocked(d) {
			delete(s.drafts, id)
			removed++
		}
	}

	if removed > 0 {
		s.onResize(len(s.drafts))
	}

	return removed
}

func (s *DraftStore) countLocked(userID string) int {
	n := 0

	for _, d := range s.drafts {
		if d.UserID == userID {
			n++
		}
	}

	return n
}
