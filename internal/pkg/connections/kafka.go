package connections

import (
	"crypto/tls"

	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/scram"
)

func getMechanism(e *env.Env) sasl.Mechanism {
	mechanism, err := scram.Mechanism(scram.SHA512, e.KafkaUsername, e.KafkaPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to create the kafka sasl mechanism")
	}
	return mechanism
}

// KafkaWriters contains kafka writers
type KafkaWriters struct {
	// Markers writes the marker commands of the tracker
	Markers *kafka.Writer
	// Log writes the log drain
	Log *kafka.Writer
}

// Close is a function that is used to flush and close all the writers
func (k *KafkaWriters) Close() {
	for _, w := range []*kafka.Writer{k.Markers, k.Log} {
		if w == nil {
			continue
		}
		if err := w.Close(); err != nil {
			log.Error().Err(err).Str("topic", w.Topic).Msg("failed to close the kafka writer")
		}
	}
}

func writer(e *env.Env, topic string) *kafka.Writer {
	w := kafka.Writer{
		Addr:  kafka.TCP(e.KafkaBroker),
		Topic: topic,
		Transport: &kafka.Transport{
			SASL: getMechanism(e),
			TLS:  &tls.Config{},
		},
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: false,
	}
	return &w
}

// InitKafkaWriters is a function that is used to initialize kafka writers
func (c *C) InitKafkaWriters(e *env.Env) {
	c.K = &KafkaWriters{
		Markers: writer(e, e.MarkerTopic),
		Log:     writer(e, e.LogTopic),
	}
}

// KafkaReader is a function that is used to intitialize a kafka reader instance
func (c *C) KafkaReader(e *env.Env, topic string, offset int64) *kafka.Reader {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{e.KafkaBroker},
		Topic:   topic,
		Dialer: &kafka.Dialer{
			SASLMechanism: getMechanism(e),
			TLS:           &tls.Config{},
		},
	})
	if err := reader.SetOffset(offset); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to set the offset of the kafka reader")
	}

	return reader
}
