package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaNotifier publishes notifications to a Kafka topic, keyed by claim
// so per-claim event order is preserved.
type KafkaNotifier struct {
	client *kgo.Client
	topic  string
	log    *log.Logger
}

// NewKafka connects a producer to the given brokers and topic.
func NewKafka(brokers []string, topic string, logger *log.Logger) (*KafkaNotifier, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaNotifier{client: client, topic: topic, log: logger}, nil
}

// EnsureTopic creates the notification topic if the broker does not
// already have it.
func (k *KafkaNotifier) EnsureTopic(ctx context.Context) error {
	admin := kadm.NewClient(k.client)
	_, err := admin.CreateTopic(ctx, 1, 1, nil, k.topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", k.topic, err)
	}
	return nil
}

// Queue publishes asynchronously. Failures are logged, never returned:
// verification outcomes are already persisted as tasks and notes, the
// event stream is advisory.
func (k *KafkaNotifier) Queue(ctx context.Context, n Notification) {
	value, err := json.Marshal(n)
	if err != nil {
		k.log.Printf("notify: encode event for claim %s: %v", n.ClaimID, err)
		return
	}
	record := &kgo.Record{Key: []byte(n.ClaimID.String()), Value: value}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			k.log.Printf("notify: publish event for claim %s: %v", n.ClaimID, err)
		}
	})
}

// Close flushes buffered records and releases the client.
func (k *KafkaNotifier) Close() {
	k.client.Close()
}
