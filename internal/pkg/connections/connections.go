// Package connections contains connections to various third party services
package connections

import (
	"database/sql"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
)

// C contains all third pary connections
type C struct {
	// R contains all Redis related databases
	R *Redis
	// DB is the SQL Server database holding the reservations and the driver locations
	DB *sql.DB
	// K contains all Kafka writers
	K *KafkaWriters
	// S is the Google cloud storage client, it is created on demand
	S *storage.Client

	storageMu sync.Mutex
}

// Close is a function that is used to close all the connections
func (c *C) Close() {
	if c.K != nil {
		c.K.Close()
	}

	if c.R != nil {
		if err := c.R.DB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close the redis client")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close the database")
		}
	}

	c.storageMu.Lock()
	defer c.storageMu.Unlock()
	if c.S != nil {
		if err := c.S.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close the storage client")
		}
	}
}
