package similarity

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/protmerge/protsim/logger"
	"github.com/protmerge/protsim/pkg/protein"
	"go.uber.org/zap"
)

// Entry errors. These signal caller misuse; everything arising from messy
// biological data is absorbed into NoData scores instead.
var (
	ErrEmptyTable           = errors.New("no protein data provided")
	ErrInsufficientProteins = errors.New("not enough proteins for similarity analysis")
	ErrProteinNotFound      = errors.New("central protein not found in dataset")
)

// MinProteins is the hard floor on dataset size. The interactive frontend
// asks for 3 before offering the analysis; the engine itself needs 2.
const MinProteins = 2

// pairKey identifies an unordered protein pair. A is always the
// lexicographically smaller accession so each pair is stored exactly once.
type pairKey struct {
	A, B string
}

func newPairKey(id1, id2 string) pairKey {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return pairKey{A: id1, B: id2}
}

// Options tunes the pre-computation pass.
type Options struct {
	MinProteins int                   // defaults to MinProteins
	Workers     int                   // defaults to runtime.NumCPU()
	Progress    func(done, total int) // invoked monotonically as pairs finish
}

// Session bundles one loaded protein table with its derived pairwise score
// cache and per-protein data-quality scores. A Session is immutable after
// Precompute returns, so ranking queries against it are safe to run
// concurrently; loading a new table just builds a new Session.
type Session struct {
	table      *protein.Table
	pairScores map[pairKey]map[Category]Score
	quality    map[string]float64
}

// Precompute runs the all-pairs pass over the table and returns the loaded
// session. The pass is CPU-bound with no I/O; it is partitioned across
// workers and aborts between pairs when ctx is cancelled.
func Precompute(ctx context.Context, table *protein.Table, opts Options) (*Session, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyTable
	}

	minProteins := opts.MinProteins
	if minProteins < MinProteins {
		minProteins = MinProteins
	}
	if table.Len() < minProteins {
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrInsufficientProteins, minProteins, table.Len())
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	records := table.Records()
	pairs := make([][2]*protein.Record, 0, table.Len()*(table.Len()-1)/2)
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			pairs = append(pairs, [2]*protein.Record{records[i], records[j]})
		}
	}

	logger.Info("Precomputing pairwise similarities",
		zap.Int("proteins", table.Len()),
		zap.Int("pairs", len(pairs)),
		zap.Int("workers", workers))

	progress := newProgressTracker(len(pairs), opts.Progress)

	// Each worker fills its own map over a strided partition of the pair
	// list; no two workers ever touch the same pair key.
	partial := make([]map[pairKey]map[Category]Score, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			local := make(map[pairKey]map[Category]Score)
			partial[w] = local

			for i := w; i < len(pairs); i += workers {
				if ctx.Err() != nil {
					return
				}
				a, b := pairs[i][0], pairs[i][1]
				local[newPairKey(a.ID, b.ID)] = computePairScores(a, b)
				progress.step()
			}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairScores := make(map[pairKey]map[Category]Score, len(pairs))
	for _, local := range partial {
		for key, scores := range local {
			pairScores[key] = scores
		}
	}

	session := &Session{
		table:      table,
		pairScores: pairScores,
		quality:    qualityScores(table),
	}

	logger.Info("Similarity pre-computation complete", zap.Int("pairs", len(pairScores)))
	return session, nil
}

// computePairScores evaluates every category for one pair. A panic inside a
// single category function degrades that category to NoData and never takes
// down the batch.
func computePairScores(a, b *protein.Record) map[Category]Score {
	scores := make(map[Category]Score, len(AllCategories))
	for _, category := range AllCategories {
		scores[category] = safeScore(category, a, b)
	}
	return scores
}

func safeScore(category Category, a, b *protein.Record) (score Score) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Category function panicked, scoring as no-data",
				zap.String("category", string(category)),
				zap.String("protein_a", a.ID),
				zap.String("protein_b", b.ID),
				zap.Any("panic", r))
			score = NoData()
		}
	}()
	return scoreFuncs[category](a, b)
}

// qualityFields are the attributes counted toward a protein's data-quality
// score: the fraction of these 8 that hold a usable value.
var qualityFields = []func(*protein.Record) protein.Value{
	func(r *protein.Record) protein.Value { return r.Sequence },
	func(r *protein.Record) protein.Value { return r.MW },
	func(r *protein.Record) protein.Value { return r.PI },
	func(r *protein.Record) protein.Value { return r.Gravy },
	func(r *protein.Record) protein.Value { return r.Ext },
	func(r *protein.Record) protein.Value { return r.Function },
	func(r *protein.Record) protein.Value { return r.Keywords },
	func(r *protein.Record) protein.Value { return r.Organism },
}

func qualityScores(table *protein.Table) map[string]float64 {
	quality := make(map[string]float64, table.Len())
	for _, rec := range table.Records() {
		available := 0
		for _, field := range qualityFields {
			if field(rec).Valid() {
				available++
			}
		}
		quality[rec.ID] = float64(available) / float64(len(qualityFields))
	}
	return quality
}

// Table returns the protein table this session was built from.
func (s *Session) Table() *protein.Table {
	return s.table
}

// Quality returns the data-quality score for one protein.
func (s *Session) Quality(id string) float64 {
	return s.quality[id]
}

// PairScores looks up the cached category scores for an unordered pair.
func (s *Session) PairScores(id1, id2 string) (map[Category]Score, bool) {
	scores, ok := s.pairScores[newPairKey(id1, id2)]
	return scores, ok
}

// ResultRow is one line of ranked output: a protein, its weighted overall
// similarity to the central protein, its data quality, and every category
// sub-score for transparency.
type ResultRow struct {
	ProteinID   string             `json:"protein_id"`
	Overall     float64            `json:"overall_similarity"`
	DataQuality float64            `json:"data_quality"`
	Scores      map[Category]Score `json:"scores"`
}

// Rank computes the weighted similarity of every other protein against the
// central protein and returns rows sorted by overall score descending, ties
// broken by original table order. Output is deterministic for identical
// input.
func (s *Session) Rank(centralID string, weights Weights) ([]ResultRow, error) {
	if _, ok := s.table.Get(centralID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrProteinNotFound, centralID)
	}

	valid := normalizeWeights(weights)
	if len(valid) == 0 {
		// Observable fallback, not an error: the caller's weights were all
		// unusable so every category weighs in equally.
		logger.Warn("No usable category weights supplied, using equal weights",
			zap.String("central", centralID))
		valid = equalWeights()
	}

	rows := make([]ResultRow, 0, s.table.Len()-1)

	for _, rec := range s.table.Records() {
		if rec.ID == centralID {
			continue
		}

		scores, ok := s.PairScores(centralID, rec.ID)
		if !ok {
			logger.Warn("Missing precomputed pair, skipping protein",
				zap.String("central", centralID),
				zap.String("protein", rec.ID))
			continue
		}

		rows = append(rows, ResultRow{
			ProteinID:   rec.ID,
			Overall:     weightedOverall(scores, valid),
			DataQuality: s.quality[rec.ID],
			Scores:      scores,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Overall > rows[j].Overall
	})

	return rows, nil
}

// weightedOverall combines category scores under normalized weights. The
// denominator only counts weights of categories that actually scored, so a
// pair missing some attributes is judged fairly on the ones it has instead
// of being dragged toward zero.
func weightedOverall(scores map[Category]Score, weights Weights) float64 {
	var total, totalWeight float64

	for category, weight := range weights {
		score, ok := scores[category]
		if !ok || !score.Known || weight <= 0 {
			continue
		}
		total += weight * score.Value
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}
	return total / totalWeight
}

func equalWeights() Weights {
	weights := make(Weights, len(AllCategories))
	for _, category := range AllCategories {
		weights[category] = 1.0 / float64(len(AllCategories))
	}
	return weights
}

// progressTracker keeps caller-visible progress monotonic even though
// workers finish pairs out of order.
type progressTracker struct {
	mu       sync.Mutex
	done     int
	total    int
	callback func(done, total int)
}

func newProgressTracker(total int, callback func(done, total int)) *progressTracker {
	return &progressTracker{total: total, callback: callback}
}

func (p *progressTracker) step() {
	if p == nil || p.callback == nil {
		return
	}
	p.mu.Lock()
	p.done++
	// callback runs under the lock so reported fractions never go backwards
	p.callback(p.done, p.total)
	p.mu.Unlock()
}
