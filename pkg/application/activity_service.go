package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"lodestar/pkg/domain"
)

// ActivityService records hash-chained engine activity. The chain head is
// cached behind a mutex so concurrent surfaces (CLI, watch, MCP) append
// without breaking linkage.
type ActivityService struct {
	repo domain.SnapshotRepository

	mu       sync.Mutex
	lastHash string
	primed   bool
}

// Compile-time check that ActivityService implements ActivityLogger
var _ domain.ActivityLogger = (*ActivityService)(nil)

func NewActivityService(repo domain.SnapshotRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Log appends one event, chained to the previous one.
func (s *ActivityService) Log(action string, actor string, metadata map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		events, err := s.repo.LoadEvents()
		if err != nil {
			return fmt.Errorf("load activity log: %w", err)
		}
		if len(events) > 0 {
			s.lastHash = events[len(events)-1].Hash
		}
		s.primed = true
	}

	event := domain.Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
		PrevHash:  s.lastHash,
	}
	event.Hash = event.CalculateHash()

	if err := s.repo.RecordEvent(event); err != nil {
		return err
	}

	s.lastHash = event.Hash
	return nil
}

// Timeline returns all recorded events in order.
func (s *ActivityService) Timeline() ([]domain.Event, error) {
	return s.repo.LoadEvents()
}

// TimelineSince returns events recorded after the given time.
func (s *ActivityService) TimelineSince(since time.Time) ([]domain.Event, error) {
	events, err := s.repo.LoadEvents()
	if err != nil {
		return nil, err
	}

	var result []domain.Event
	for _, e := range events {
		if e.Timestamp.After(since) {
			result = append(result, e)
		}
	}
	return result, nil
}

// VerifyChain checks the hash chain for tampering and truncation. It returns
// one violation string per broken link or mismatched hash; an empty result
// means the log is intact.
func (s *ActivityService) VerifyChain() ([]string, error) {
	events, err := s.repo.LoadEvents()
	if err != nil {
		return nil, err
	}

	var violations []string
	lastHash := ""

	for i, e := range events {
		if e.PrevHash != lastHash {
			violations = append(violations, fmt.Sprintf("Event %d (%s): PrevHash mismatch. Activity trail broken.", i, e.ID))
		}

		expected := e.CalculateHash()
		if e.Hash != expected {
			violations = append(violations, fmt.Sprintf("Event %d (%s): Content hash mismatch. Possible tampering.", i, e.ID))
		}

		lastHash = e.Hash
	}

	return violations, nil
}
