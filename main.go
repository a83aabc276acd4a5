package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"path"

	"github.com/joho/godotenv"

	"github.com/protmerge/protsim/internal/util"
	"github.com/protmerge/protsim/logger"
	mydb "github.com/protmerge/protsim/pkg/db"
	"github.com/protmerge/protsim/pkg/handler"
	"github.com/protmerge/protsim/pkg/middle"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"
)

func main() {

	// Establish logger
	VERSION := "0.1.0"
	LOG_LEVEL := zapcore.InfoLevel

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	protsim_data := os.Getenv("PROTSIM_DATA")

	if protsim_data == "" {
		logger.Warn("No local environment (PROTSIM_DATA), using default value (./data)")
		protsim_data = "./data"
	}

	protsim_sqlite := path.Join(protsim_data, "db/protein_table.db")

	if !util.FileExists(protsim_sqlite) {
		logger.Warn("Protein database file not found, a fresh one will be created",
			zap.String("DB_LOC", protsim_sqlite))
	}

	// Connect to db
	db, dbErr := sql.Open("sqlite", protsim_sqlite)
	if dbErr != nil {
		logger.Fatal("Cannot open database", zap.Error(dbErr))
	}

	if err := mydb.InitSchema(context.Background(), db); err != nil {
		logger.Fatal("Cannot initialize database schema", zap.Error(err))
	}

	actx := &handler.AppContext{
		DB:   db,
		Jobs: handler.NewAnalysisJobManager(),
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Open database on", zap.String("DB_LOC", protsim_sqlite))

	mux := NewRouter(actx)

	// Apply middleware
	m := middle.LoggingMiddleware(middle.CreateMiddlewareLogger(zapcore.DebugLevel))
	newmux := m(mux)

	logger.Info("Server starting on :8080...")
	httpErr := http.ListenAndServe("0.0.0.0:8080", newmux)
	if httpErr != nil {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
}

func NewRouter(actx *handler.AppContext) *http.ServeMux {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)
	mux.HandleFunc("GET /api/v1/categories", handler.CategoriesHandler)
	mux.HandleFunc("GET /api/v1/presets", handler.PresetsHandler)
	mux.HandleFunc("GET /api/v1/datasets/summary", actx.DatasetSummaryHandler)

	// Analysis jobs
	mux.HandleFunc("POST /api/v1/analysis", actx.StartAnalysisHandler)
	mux.HandleFunc("GET /api/v1/analysis/{job_id}", actx.GetAnalysisHandler)
	mux.HandleFunc("GET /api/v1/analysis/{job_id}/csv", actx.ExportAnalysisCSVHandler)

	return mux
}
