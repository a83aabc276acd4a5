package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/protmerge/protsim/logger"
	"github.com/protmerge/protsim/pkg/db"
	"github.com/protmerge/protsim/pkg/handler/request"
	"github.com/protmerge/protsim/pkg/protein"
	"github.com/protmerge/protsim/pkg/render"
	"github.com/protmerge/protsim/pkg/similarity"
	"go.uber.org/zap"
)

// Hard ceiling on one precompute pass. 500 proteins is ~125k pairs and
// finishes well inside this.
const analysisTimeout = 10 * time.Minute

type analysisStartedResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type analysisStatusResponse struct {
	JobID     string                 `json:"job_id"`
	CentralID string                 `json:"central_id"`
	Status    string                 `json:"status"`
	Progress  float64                `json:"progress"`
	Error     string                 `json:"error,omitempty"`
	Result    []similarity.ResultRow `json:"result,omitempty"`
}

// StartAnalysisHandler kicks off an asynchronous similarity ranking run.
// Caller-contract violations (bad weights mode, unknown central protein, too
// few proteins) are rejected here; the long all-pairs pass runs in the
// background under the returned job ID.
func (actx *AppContext) StartAnalysisHandler(w http.ResponseWriter, r *http.Request) {

	var req request.AnalysisRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(err.Error())
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Central_ID == "" {
		http.Error(w, "central_id is required", http.StatusBadRequest)
		return
	}

	mode := request.NewWeightMode(req.Weight_Mode)
	if mode == request.WeightModeUnknown {
		http.Error(w, "weight_mode must be preset, custom or adaptive", http.StatusBadRequest)
		return
	}

	// Load the table up front so contract violations fail the request, not
	// the job.
	table, err := db.LoadProteins(r.Context(), actx.DB)
	if err != nil {
		logger.Error("Failed to load protein table", zap.Error(err))
		http.Error(w, "Failed to load protein dataset", http.StatusInternalServerError)
		return
	}

	if table.Len() < similarity.MinProteins {
		http.Error(w, fmt.Sprintf("Need at least %d proteins, dataset has %d",
			similarity.MinProteins, table.Len()), http.StatusBadRequest)
		return
	}

	if _, ok := table.Get(req.Central_ID); !ok {
		http.Error(w, fmt.Sprintf("Central protein %s not found in dataset", req.Central_ID), http.StatusNotFound)
		return
	}

	weights, err := resolveWeights(mode, req, table)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := actx.Jobs.NewJob(req.Central_ID)

	go actx.runAnalysis(job.ID, table, req, weights)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(analysisStartedResponse{JobID: job.ID, Status: string(AnalysisJobQueued)})
}

func resolveWeights(mode request.WeightMode, req request.AnalysisRequest, table *protein.Table) (similarity.Weights, error) {
	switch mode {
	case request.WeightModePreset:
		name := req.Preset
		if name == "" {
			name = "basic"
		}
		weights, ok := similarity.Preset(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		return weights, nil
	case request.WeightModeAdaptive:
		return similarity.AdaptiveWeights(table), nil
	default:
		// custom: pass through as-is, the engine validates and renormalizes
		weights := make(similarity.Weights, len(req.Weights))
		for name, w := range req.Weights {
			weights[similarity.Category(name)] = w
		}
		return weights, nil
	}
}

func (actx *AppContext) runAnalysis(jobID string, table *protein.Table, req request.AnalysisRequest, weights similarity.Weights) {

	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	actx.Jobs.SetRunning(jobID)

	session, err := similarity.Precompute(ctx, table, similarity.Options{
		Workers: req.Workers,
		Progress: func(done, total int) {
			actx.Jobs.SetProgress(jobID, float64(done)/float64(total))
		},
	})
	if err != nil {
		logger.Error("Similarity pre-computation failed", zap.String("job_id", jobID), zap.Error(err))
		actx.Jobs.FailJob(jobID, err)
		return
	}

	result, err := session.Rank(req.Central_ID, weights)
	if err != nil {
		logger.Error("Ranking failed", zap.String("job_id", jobID), zap.Error(err))
		actx.Jobs.FailJob(jobID, err)
		return
	}

	if err := db.SaveRanking(ctx, actx.DB, jobID, req.Central_ID, result); err != nil {
		// Ranking itself succeeded, keep the job usable and just log.
		logger.Warn("Failed to persist ranking", zap.String("job_id", jobID), zap.Error(err))
	}

	actx.Jobs.CompleteJob(jobID, result)

	logger.Info("Analysis complete",
		zap.String("job_id", jobID),
		zap.String("central", req.Central_ID),
		zap.Int("ranked", len(result)))
}

// GetAnalysisHandler reports job status, progress and, once complete, the
// ranked rows.
func (actx *AppContext) GetAnalysisHandler(w http.ResponseWriter, r *http.Request) {

	job_id := r.PathValue("job_id")

	job, ok := actx.Jobs.GetJob(job_id)
	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	response := analysisStatusResponse{
		JobID:     job.ID,
		CentralID: job.CentralID,
		Status:    string(job.Status),
		Progress:  job.Progress,
		Error:     job.Error,
	}
	if job.Status == AnalysisJobCompleted {
		response.Result = job.Result
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ExportAnalysisCSVHandler streams a completed ranking as CSV.
func (actx *AppContext) ExportAnalysisCSVHandler(w http.ResponseWriter, r *http.Request) {

	job_id := r.PathValue("job_id")

	job, ok := actx.Jobs.GetJob(job_id)
	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	if job.Status != AnalysisJobCompleted {
		http.Error(w, "Job is not completed yet", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=similarity_%s.csv", job.CentralID))

	if err := render.WriteRankingCSV(w, job.Result); err != nil {
		logger.Error("CSV export failed", zap.String("job_id", job_id), zap.Error(err))
	}
}

// CategoriesHandler lists the implemented similarity categories.
func CategoriesHandler(w http.ResponseWriter, r *http.Request) {

	type categoryInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	categories := make([]categoryInfo, 0, len(similarity.AllCategories))
	for _, category := range similarity.AllCategories {
		categories = append(categories, categoryInfo{
			Name:        string(category),
			Description: similarity.CategoryDescriptions[category],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

// PresetsHandler lists the named preset weight vectors.
func PresetsHandler(w http.ResponseWriter, r *http.Request) {

	presets := make(map[string]similarity.Weights, len(similarity.PresetNames()))
	for _, name := range similarity.PresetNames() {
		weights, _ := similarity.Preset(name)
		presets[name] = weights
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(presets)
}

// DatasetSummaryHandler reports per-field completeness of the loaded
// dataset, the numbers to look at before picking weights.
func (actx *AppContext) DatasetSummaryHandler(w http.ResponseWriter, r *http.Request) {

	table, err := db.LoadProteins(r.Context(), actx.DB)
	if err != nil {
		logger.Error("Failed to load protein table", zap.Error(err))
		http.Error(w, "Failed to load protein dataset", http.StatusInternalServerError)
		return
	}

	type summaryResponse struct {
		Proteins int                       `json:"proteins"`
		Fields   []similarity.FieldSummary `json:"fields"`
		Adaptive map[string]float64        `json:"adaptive_weights"`
	}

	adaptive := similarity.AdaptiveWeights(table)
	named := make(map[string]float64, len(adaptive))
	for category, weight := range adaptive {
		named[string(category)] = weight
	}

	response := summaryResponse{
		Proteins: table.Len(),
		Fields:   similarity.Summarize(table),
		Adaptive: named,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
