package queue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/announce"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/departments"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/snapshot"

	"github.com/google/uuid"
)

// DefaultRecentLimit is how many called tickets the display shows.
const DefaultRecentLimit = 6

// TicketStore is the queue-state API consumed by the HTTP layer.
type TicketStore interface {
	IssueTicket(ctx context.Context, departmentID string) (models.Ticket, error)
	CallTicket(ctx context.Context, ticketID string) (models.Ticket, error)
	CompleteTicket(ctx context.Context, ticketID string) (models.Ticket, error)
	WaitingList(departmentID string) ([]models.Ticket, error)
	RecentlyCalled(limit int) []models.Ticket
}

// Broadcaster receives ticket lifecycle events for realtime displays.
type Broadcaster interface {
	BroadcastTicket(eventType string, ticket models.Ticket)
}

// Store owns the queue state. All mutation goes through its methods,
// serialized by the mutex so the per-department numbering invariant
// holds under concurrent HTTP requests. The snapshot is written after
// every mutation; a failed write is logged and the in-memory state
// stays authoritative for the session.
type Store struct {
	registry  *departments.Registry
	snapshots snapshot.Store
	announcer announce.Announcer
	broadcast Broadcaster
	now       func() time.Time

	mu    sync.Mutex
	state models.QueueState
}

type Options struct {
	Announcer   announce.Announcer
	Broadcaster Broadcaster
	Now         func() time.Time
}

func New(registry *departments.Registry, snapshots snapshot.Store, options Options) *Store {
	now := options.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		registry:  registry,
		snapshots: snapshots,
		announcer: options.Announcer,
		broadcast: options.Broadcaster,
		now:       now,
		state: models.QueueState{
			LastNumbers: make(map[string]int),
		},
	}
}

// LoadSnapshot replaces the in-memory state with the persisted one.
// A missing snapshot keeps the empty state with all counters at zero.
func (s *Store) LoadSnapshot(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	state, found, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load queue snapshot: %w", err)
	}
	if !found {
		return nil
	}
	if state.LastNumbers == nil {
		state.LastNumbers = make(map[string]int)
	}
	// Repair the counter cache against the ticket log: each counter
	// must equal the highest number issued for its department.
	for _, ticket := range state.Tickets {
		if ticket.Number > state.LastNumbers[ticket.DepartmentID] {
			state.LastNumbers[ticket.DepartmentID] = ticket.Number
		}
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// DisplayID builds the human-shown ticket label, e.g. "V-007".
func DisplayID(prefix string, number int) string {
	return fmt.Sprintf("%s-%03d", prefix, number)
}

// IssueTicket draws the next number for a department and appends a
// waiting ticket. The counter read and the append happen under one
// lock, so no interleaved issuance observes a stale counter.
func (s *Store) IssueTicket(ctx context.Context, departmentID string) (models.Ticket, error) {
	dept, ok := s.registry.Get(departmentID)
	if !ok {
		return models.Ticket{}, ErrDepartmentNotFound
	}

	s.mu.Lock()
	next := s.state.LastNumbers[departmentID] + 1
	ticket := models.Ticket{
		ID:           uuid.NewString(),
		Number:       next,
		DisplayID:    DisplayID(dept.Prefix, next),
		DepartmentID: departmentID,
		Status:       models.StatusWaiting,
		CreatedAt:    s.now().UTC(),
	}
	s.state.Tickets = append(s.state.Tickets, ticket)
	s.state.LastNumbers[departmentID] = next
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish("ticket_issued", ticket)
	return ticket, nil
}

// CallTicket moves a ticket to called and voices the announcement.
// The status change is applied and persisted before the announcement
// goes out; a slow or failing announcement never touches ticket state.
func (s *Store) CallTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	s.mu.Lock()
	idx := s.indexLocked(ticketID)
	if idx < 0 {
		s.mu.Unlock()
		return models.Ticket{}, ErrTicketNotFound
	}
	if !ValidTransition("call", s.state.Tickets[idx].Status) {
		s.mu.Unlock()
		return models.Ticket{}, fmt.Errorf("%w: call from %s", ErrInvalidTransition, s.state.Tickets[idx].Status)
	}
	calledAt := s.now().UTC()
	s.state.Tickets[idx].Status = models.StatusCalled
	s.state.Tickets[idx].CalledAt = &calledAt
	ticket := s.state.Tickets[idx]
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish("ticket_called", ticket)

	if s.announcer != nil {
		dept, ok := s.registry.Get(ticket.DepartmentID)
		if ok {
			go func() {
				if err := s.announcer.Announce(context.Background(), ticket.DisplayID, dept); err != nil {
					log.Printf("announce ticket %s: %v", ticket.DisplayID, err)
				}
			}()
		}
	}
	return ticket, nil
}

// CompleteTicket is terminal and idempotent.
func (s *Store) CompleteTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	s.mu.Lock()
	idx := s.indexLocked(ticketID)
	if idx < 0 {
		s.mu.Unlock()
		return models.Ticket{}, ErrTicketNotFound
	}
	if s.state.Tickets[idx].CompletedAt == nil {
		completedAt := s.now().UTC()
		s.state.Tickets[idx].CompletedAt = &completedAt
	}
	s.state.Tickets[idx].Status = models.StatusCompleted
	ticket := s.state.Tickets[idx]
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish("ticket_completed", ticket)
	return ticket, nil
}

// WaitingList returns a department's waiting tickets in creation order.
func (s *Store) WaitingList(departmentID string) ([]models.Ticket, error) {
	if _, ok := s.registry.Get(departmentID); !ok {
		return nil, ErrDepartmentNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Ticket
	for _, ticket := range s.state.Tickets {
		if ticket.DepartmentID == departmentID && ticket.Status == models.StatusWaiting {
			out = append(out, ticket)
		}
	}
	return out, nil
}

// RecentlyCalled returns up to limit called tickets, newest-first by
// issuance order. Recalling a ticket does not move it in this list.
func (s *Store) RecentlyCalled(limit int) []models.Ticket {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var called []models.Ticket
	for _, ticket := range s.state.Tickets {
		if ticket.Status == models.StatusCalled {
			called = append(called, ticket)
		}
	}
	if len(called) > limit {
		called = called[len(called)-limit:]
	}
	for i, j := 0, len(called)-1; i < j; i, j = i+1, j-1 {
		called[i], called[j] = called[j], called[i]
	}
	return called
}

// State returns a deep copy of the queue state.
func (s *Store) State() models.QueueState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneLocked()
}

func (s *Store) indexLocked(ticketID string) int {
	for i := range s.state.Tickets {
		if s.state.Tickets[i].ID == ticketID {
			return i
		}
	}
	return -1
}

func (s *Store) cloneLocked() models.QueueState {
	clone := models.QueueState{
		Tickets:     make([]models.Ticket, len(s.state.Tickets)),
		LastNumbers: make(map[string]int, len(s.state.LastNumbers)),
	}
	copy(clone.Tickets, s.state.Tickets)
	for dept, number := range s.state.LastNumbers {
		clone.LastNumbers[dept] = number
	}
	return clone
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, s.cloneLocked()); err != nil {
		log.Printf("snapshot save error: %v", err)
	}
}

func (s *Store) publish(eventType string, ticket models.Ticket) {
	if s.broadcast == nil {
		return
	}
	s.broadcast.BroadcastTicket(eventType, ticket)
}
