package handler

// DI for all handlers and models alike.

import (
	"database/sql"
)

type AppContext struct {
	DB   *sql.DB
	Jobs *AnalysisJobManager
}
