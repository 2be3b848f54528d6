package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// defaultCapacity bounds the queue; the oldest notices are dropped first.
const defaultCapacity = 32

// Notification is a toast shown to the user on the next page render
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier is the side channel auth and routing use to tell the user what happened
type Notifier interface {
	Notify(level Level, message string)
}

// Center queues notifications until a page drains them
type Center struct {
	mu       sync.Mutex
	pending  []Notification
	capacity int
	nowTime  func() time.Time
}

var _ Notifier = (*Center)(nil)

func NewCenter() *Center {
	return &Center{capacity: defaultCapacity, nowTime: time.Now}
}

func (c *Center) Notify(level Level, message string) {
	if message == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: c.nowTime(),
	})
	if over := len(c.pending) - c.capacity; over > 0 {
		c.pending = append([]Notification(nil), c.pending[over:]...)
	}
}

// Drain returns and clears every pending notification, oldest first
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.pending
	c.pending = nil
	return out
}

// Discard is a Notifier that drops everything, for callers with no UI
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Level, string) {}
