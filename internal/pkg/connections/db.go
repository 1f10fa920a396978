package connections

import (
	"database/sql"
	"fmt"
	"net/url"

	// Driver for the mssql server
	_ "github.com/denisenkom/go-mssqldb"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
)

// DSN is a function that is used to build the SQL Server connection string
func DSN(e *env.Env) string {
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(e.DBUser, e.DBPassword),
		Host:     fmt.Sprintf("%s:%d", e.DBHost, e.DBPort),
		RawQuery: url.Values{"database": {e.DBDatabase}, "encrypt": {"true"}, "TrustServerCertificate": {"true"}}.Encode(),
	}

	return u.String()
}

// InitDB is a function that is used to initialize databases
func (c *C) InitDB(e *env.Env) {
	db, err := sql.Open("sqlserver", DSN(e))
	if err != nil {
		lib.LogFatal(err)
	}
	if err := db.Ping(); err != nil {
		lib.LogFatal(err)
	}

	c.DB = db
}
