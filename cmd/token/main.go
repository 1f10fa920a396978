// Issue an admin token for switching the tracker mode
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tokens"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/google/uuid"
)

func main() {
	operator := flag.String("operator", "", "the id of the operator, a new one is generated when empty")
	ttl := flag.Duration("ttl", 12*time.Hour, "how long the token is valid for")
	flag.Parse()

	var e env.Env
	e.Load()

	id := uuid.New()
	if *operator != "" {
		parsed, err := uuid.Parse(*operator)
		if err != nil {
			logger.Errorf(err)
		}
		id = parsed
	}

	at := tokens.AdminToken{E: &e}
	token, err := at.Create(id, *ttl)
	if err != nil {
		logger.Errorf(err)
	}

	fmt.Println(token)
}
