// Package publish announces finished reports on a Kafka topic.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

// Event is the message body published for one run.
type Event struct {
	RunID     string     `json:"run_id"`
	Source    string     `json:"source"`
	Gated     bool       `json:"gated"`
	Passed    bool       `json:"passed"`
	Failed    int        `json:"failed"`
	Rows      []EventRow `json:"rows"`
	CreatedAt time.Time  `json:"created_at"`
}

type EventRow struct {
	TestID       string `json:"test_id"`
	Description  string `json:"description"`
	Result       string `json:"result"`
	Details      string `json:"details,omitempty"`
	IssuesCount  int    `json:"issues_count"`
	Observations string `json:"observations"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}
	return &Publisher{writer: w, now: time.Now}, nil
}

// NewEvent builds the message body for a report.
func NewEvent(runID, source string, gated bool, rep *types.Report, at time.Time) Event {
	ev := Event{
		RunID:     runID,
		Source:    source,
		Gated:     gated,
		Passed:    rep.Passed(),
		Failed:    rep.Failed(),
		Rows:      make([]EventRow, len(rep.Rows)),
		CreatedAt: at.UTC(),
	}
	for i, row := range rep.Rows {
		ev.Rows[i] = EventRow{
			TestID:       row.TestID,
			Description:  row.Description,
			Result:       row.Result,
			Details:      row.Details,
			IssuesCount:  row.IssuesCount,
			Observations: row.Observations,
		}
	}
	return ev
}

// Publish sends one message keyed by run id.
func (p *Publisher) Publish(ctx context.Context, runID, source string, gated bool, rep *types.Report) error {
	body, err := json.Marshal(NewEvent(runID, source, gated, rep, p.now()))
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(runID),
		Value: body,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
