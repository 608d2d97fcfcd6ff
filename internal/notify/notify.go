package notify

import (
	"context"
	"encoding/json"
	"fmt"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ssriramteja/tablemeta/pkg/types"
)

// Notifier emits one run-summary event per finished collection so freshness
// dashboards and alerting can follow collection health without scraping
// logs. Delivery is best-effort; callers decide whether a failed publish
// matters.
type Notifier struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func New(brokers []string, topic string, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchSize:    1,
		},
		log: log,
	}
}

// Publish sends the summary keyed by run ID.
func (n *Notifier) Publish(ctx context.Context, summary types.RunSummary) error {
	msg, err := message(summary)
	if err != nil {
		return err
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish run summary: %w", err)
	}
	n.log.Info("published run summary",
		zap.String("topic", n.writer.Topic),
		zap.String("run_id", summary.RunID))
	return nil
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

func message(summary types.RunSummary) (kafka.Message, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode run summary: %w", err)
	}
	return kafka.Message{
		Key:   []byte(summary.RunID),
		Value: payload,
	}, nil
}
