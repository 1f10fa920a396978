// Package services contains services shared by the whole process
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/bytedance/sonic"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/segmentio/kafka-go"
)

// M is a log payload with named fields
type M map[string]interface{}

// Timestamp is the redis key a log line is stored under
func Timestamp(now time.Time) string {
	return fmt.Sprintf("[%d|%s|%d : %d:%d]", now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute())
}

// Entry is the payload that is written to the log topic
func Entry(now time.Time, data interface{}) ([]byte, error) {
	return sonic.Marshal(M{
		"date":      fmt.Sprintf("%d %s %d", now.Day(), now.Month(), now.Year()),
		"time":      fmt.Sprintf("%d : %d", now.Hour(), now.Minute()),
		"timestamp": now.UTC().Unix(),
		"data":      data,
	})
}

// Log is used as a log drain to log messages
func Log(c *connections.C, data interface{}) {
	now := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		if c.R == nil {
			return
		}

		value, err := sonic.MarshalString(data)
		if err != nil {
			logger.Error(err)
			return
		}

		err = c.R.DB.Set(ctx, Timestamp(now), value, 24*time.Hour).Err()
		if err != nil {
			logger.Error(err)
		}
	}()

	go func() {
		defer wg.Done()

		if c.K == nil || c.K.Log == nil {
			return
		}

		payload, err := Entry(now, data)
		if err != nil {
			logger.Error(err)
			return
		}

		err = c.K.Log.WriteMessages(ctx, kafka.Message{Value: payload})
		if err != nil {
			logger.Error(err)
		}
	}()

	wg.Wait()
}
