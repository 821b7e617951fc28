package messaging

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Event describes an entity lifecycle change published after a committed
// write. Consumers are external; publishing is best-effort and never fails
// the originating request.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int    `json:"id"`
}

type Producer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

func NewProducer(url string, subject string, logger *slog.Logger) (*Producer, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &Producer{
		conn:    nc,
		subject: subject,
		logger:  logger,
	}, nil
}

// Publish sends an event to NATS. Safe to call on a nil Producer, which is
// how services run when no broker is configured.
func (p *Producer) Publish(event Event) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "error", err)
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Error("failed to publish event", "error", err, "subject", p.subject)
		return
	}

	p.logger.Info("event published", "subject", p.subject, "entity", event.Entity, "action", event.Action)
}

func (p *Producer) Close() {
	if p != nil {
		p.conn.Close()
	}
}
