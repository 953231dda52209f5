package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"callgate/pkg/platform/circuit"
)

// KafkaStore publishes audit events to a Kafka topic. A circuit breaker
// drops events while the broker is unhealthy instead of stalling routing
// decisions behind a dead broker; while open, one probe per cooldown window
// checks whether the broker has recovered.
type KafkaStore struct {
	client   *kgo.Client
	topic    string
	breaker  *circuit.Breaker
	cooldown time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// NewKafkaStore connects a franz-go producer for the given brokers/topic.
func NewKafkaStore(brokers []string, topic string) (*KafkaStore, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaStore{
		client:   client,
		topic:    topic,
		breaker:  circuit.New("audit-kafka", circuit.WithFailureThreshold(3)),
		cooldown: 30 * time.Second,
	}, nil
}

func (s *KafkaStore) allowAttempt() bool {
	if !s.breaker.IsOpen() {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if now.Before(s.retryAt) {
		return false
	}
	s.retryAt = now.Add(s.cooldown)
	return true
}

// Append publishes the event. While the circuit is open events are dropped;
// audit must never block a routing decision.
func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	if !s.allowAttempt() {
		return nil
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Category),
		Value: raw,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		s.breaker.RecordFailure()
		return fmt.Errorf("produce audit event: %w", err)
	}
	s.breaker.RecordSuccess()
	return nil
}

// Close flushes and shuts down the producer.
func (s *KafkaStore) Close() {
	s.client.Close()
}
