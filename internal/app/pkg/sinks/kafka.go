package sinks

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// MarkerLog is the name the kafka sink registers with
const MarkerLog = "marker_log"

// MessageWriter writes messages to a kafka topic
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Entry is a marker command as written to the marker topic
type Entry struct {
	Command tracker.MarkerCommand `json:"command"`
	At      time.Time             `json:"at"`
}

// Kafka mirrors every marker command to the marker topic so it can be replayed later.
// Commands are queued and written by Run, a full queue drops the command
type Kafka struct {
	w     MessageWriter
	queue chan kafka.Message
	now   func() time.Time
}

// NewKafka creates a kafka sink with a queue of the given size
func NewKafka(w MessageWriter, size int) *Kafka {
	if size <= 0 {
		size = 1024
	}

	return &Kafka{
		w:     w,
		queue: make(chan kafka.Message, size),
		now:   time.Now,
	}
}

// Surface is the name of the sink
func (k *Kafka) Surface() string {
	return MarkerLog
}

// Apply queues the command
func (k *Kafka) Apply(cmd tracker.MarkerCommand) {
	payload, err := sonic.Marshal(Entry{
		Command: cmd,
		At:      k.now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal the marker command")
		return
	}

	message := kafka.Message{
		Key:   []byte(cmd.ID),
		Value: payload,
	}

	select {
	case k.queue <- message:
	default:
		log.Warn().Str("op", string(cmd.Op)).Str("id", cmd.ID).Msg("the marker log is full, dropping the command")
	}
}

// Run writes the queued commands until the context is cancelled
func (k *Kafka) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-k.queue:
			batch := []kafka.Message{message}
		drain:
			for len(batch) < cap(k.queue) {
				select {
				case message := <-k.queue:
					batch = append(batch, message)
				default:
					break drain
				}
			}

			if err := k.w.WriteMessages(ctx, batch...); err != nil {
				log.Error().Err(err).Int("messages", len(batch)).Msg("failed to write to the marker log")
			}
		}
	}
}
