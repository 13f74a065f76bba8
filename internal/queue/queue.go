// Package queue publishes AI-call requests for leads.
package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Topology of the call request exchange.
const (
	ExchangeName = "leadshift.calls"
	QueueName    = "leadshift.calls.requests"
	DLXName      = "leadshift.calls.dlx"
	DLQName      = "leadshift.calls.requests.dlq"
	RoutingKey   = "call.request"
)

// CallRequest asks the calling agent to phone one lead.
type CallRequest struct {
	LeadID      string    `json:"lead_id"`
	CompanyName string    `json:"company_name"`
	Phone       string    `json:"phone"`
	Industry    string    `json:"industry,omitempty"`
	Location    string    `json:"location,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// CallQueue accepts call requests.
type CallQueue interface {
	Publish(ctx context.Context, req CallRequest) error
	Name() string
	Close() error
}

// LogQueue logs requests instead of publishing them.
type LogQueue struct {
	logger *slog.Logger

	mu        sync.Mutex
	published []CallRequest
}

func NewLogQueue(logger *slog.Logger) *LogQueue {
	return &LogQueue{logger: logger}
}

func (q *LogQueue) Name() string { return "log" }

func (q *LogQueue) Publish(ctx context.Context, req CallRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	q.published = append(q.published, req)
	q.mu.Unlock()

	q.logger.Info("call request (not published)",
		"lead_id", req.LeadID,
		"company", req.CompanyName,
		"phone", req.Phone,
	)
	return nil
}

// Published returns a copy of the logged requests.
func (q *LogQueue) Published() []CallRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]CallRequest(nil), q.published...)
}

func (q *LogQueue) Close() error { return nil }

var _ CallQueue = (*LogQueue)(nil)

// New connects to url, or returns a LogQueue when url is empty.
func New(url string, logger *slog.Logger) (CallQueue, error) {
	if url == "" {
		return NewLogQueue(logger), nil
	}
	return NewAMQPQueue(url, logger)
}
