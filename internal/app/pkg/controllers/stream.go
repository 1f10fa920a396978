// Package controllers contains controllers that are shared by several routes
package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// MessageReader reads the messages of a kafka topic
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Stream contains controllers related to streaming and subscribing to streaming services
type Stream struct {
	E *env.Env
	C *connections.C

	// Reader opens the reader of the topic, it defaults to the kafka connection
	Reader func(topic string, offset int64) MessageReader
}

// Subscribe is a function that is used to stream a Kafka topic from a given offset as server
// sent events until the client goes away
func (s *Stream) Subscribe(ctx context.Context, w http.ResponseWriter, topic string, offset int64) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error().Msg("failed to cast the type to flusher")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "Keep-alive")
	flusher.Flush()

	reader := s.open(topic, offset)
	defer reader.Close()

	for {
		message, err := reader.ReadMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
				log.Error().Err(err).Str("topic", topic).Msg("failed to read from the kafka topic")
			}
			return
		}
		if len(message.Value) == 0 {
			continue
		}

		payload, err := lib.ToStr(string(message.Value))
		if err != nil {
			log.Error().Err(err).Str("value", string(message.Value)).Msg("Error occured when serialization and deserialization")
			continue
		}

		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}

func (s *Stream) open(topic string, offset int64) MessageReader {
	if s.Reader != nil {
		return s.Reader(topic, offset)
	}
	return s.C.KafkaReader(s.E, topic, offset)
}
