// Package enums contains various enumerations
package enums

// Env is a struct that is used to contain various environments
type Env string

const (
	// Dev represents the local development environment
	Dev Env = "dev"
	// Stg represents the remote testing environment (this is basically used for testing (unit & intergration))
	Stg Env = "stg"
	// Prd represents the production environment
	Prd Env = "prd"
)

// Surface is a map view that renders vehicle markers
type Surface string

const (
	// Operations is the map that sits next to the dispatch grid
	Operations Surface = "operations"
	// Fleet is the standalone fleet/GPS map
	Fleet Surface = "fleet"
)

// Surfaces lists every map surface the tracker publishes to
var Surfaces = []Surface{Operations, Fleet}
