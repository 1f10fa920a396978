// Package errors contains essential errors
package errors

import "fmt"

var (
	// ErrServer is to indicate an internal server error
	ErrServer = fmt.Errorf("something went wrong, please try again later")
	// ErrUnauthorized is to indicate the user is unauthorized to perform the given operation
	ErrUnauthorized = fmt.Errorf("you are not authorized to perform this operation")
	// ErrBadRequest is to indicate that the request is a bad request
	ErrBadRequest = fmt.Errorf("invalid data, please check and try agan")
	// ErrUnsuportedMedia is to indicate that the request body that the client is providing is not supported
	ErrUnsuportedMedia = fmt.Errorf("request body is not supported")

	// ErrReservationStore is to indicate that the reservation store could not be queried
	ErrReservationStore = fmt.Errorf("reservation store is unavailable")
	// ErrReservationNotFound is to indicate that the confirmation number is not in the loaded grid
	ErrReservationNotFound = fmt.Errorf("reservation could not be found in the current grid")
	// ErrTelemetryStore is to indicate that the telemetry store could not be queried
	ErrTelemetryStore = fmt.Errorf("live telemetry is unavailable")
	// ErrTelemetryNotProvisioned is to indicate that the telemetry table has not been created yet
	ErrTelemetryNotProvisioned = fmt.Errorf("live telemetry table has not been provisioned")
	// ErrUnknownSurface is to indicate that the requested map surface does not exist
	ErrUnknownSurface = fmt.Errorf("the requested map surface does not exist")
)
