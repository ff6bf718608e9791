// Package notify publishes verification events for downstream ops
// tooling. Delivery is fire-and-forget: a claim check never fails
// because the event bus is down.
package notify

import (
	"context"
	"sync"
	"time"

	"claimflow/pkg/domain"
)

// Notification is one verification event.
type Notification struct {
	ClaimID    domain.ClaimID `json:"claim_id"`
	Policy     domain.Policy  `json:"policy"`
	Event      string         `json:"event"`
	Match      string         `json:"match"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Notifier queues a notification for delivery.
type Notifier interface {
	Queue(ctx context.Context, n Notification)
}

// MemoryNotifier records notifications for tests.
type MemoryNotifier struct {
	mu    sync.Mutex
	queue []Notification
}

func NewMemory() *MemoryNotifier {
	return &MemoryNotifier{}
}

func (m *MemoryNotifier) Queue(_ context.Context, n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, n)
}

// Queued returns a copy of everything queued so far.
func (m *MemoryNotifier) Queued() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.queue))
	copy(out, m.queue)
	return out
}
