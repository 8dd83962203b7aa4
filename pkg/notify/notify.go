// Package notify delivers the console's transient success and error messages
// to logs, terminals and websocket clients.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one message shown to the user.
type Notification struct {
	Level Level     `json:"level"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// Notifier receives notifications. Calls must not block.
type Notifier interface {
	NotifySuccess(text string)
	NotifyError(text string)
}

// Sink receives fully formed notifications.
type Sink interface {
	Publish(n Notification)
}

// Multi fans notifications out to every sink and counts them.
type Multi struct {
	sinks []Sink
	now   func() time.Time
}

var _ Notifier = (*Multi)(nil)

// NewMulti creates a Multi over sinks. Nil sinks are skipped.
func NewMulti(sinks ...Sink) *Multi {
	m := &Multi{now: time.Now}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

func (m *Multi) NotifySuccess(text string) {
	m.publish(LevelSuccess, text)
}

func (m *Multi) NotifyError(text string) {
	m.publish(LevelError, text)
}

func (m *Multi) publish(level Level, text string) {
	metrics.NotificationsTotal.WithLabelValues(string(level)).Inc()
	n := Notification{Level: level, Text: text, At: m.now().UTC()}
	for _, s := range m.sinks {
		s.Publish(n)
	}
}

// Log writes notifications to a zap logger.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a Log sink.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Publish(n Notification) {
	switch n.Level {
	case LevelError:
		l.logger.Warn("notification", zap.String("level", string(n.Level)), zap.String("text", n.Text))
	default:
		l.logger.Info("notification", zap.String("level", string(n.Level)), zap.String("text", n.Text))
	}
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *Recorder) Publish(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return Notification{}, false
	}
	return r.all[len(r.all)-1], true
}
