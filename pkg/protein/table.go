package protein

import (
	"strings"

	"github.com/protmerge/protsim/logger"
	"go.uber.org/zap"
)

// Table is the working set of proteins handed to the similarity engine.
// Row order is preserved because it is the deterministic tie breaker for
// ranked output.
type Table struct {
	records []*Record
	index   map[string]int // accession -> position in records
}

// NewTable builds a table from rows in their original order. Duplicate
// accessions resolve first-occurrence-wins; later duplicates are dropped
// with a warning so per-protein lookups stay unambiguous.
func NewTable(records []*Record) *Table {
	t := &Table{
		records: make([]*Record, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}

	for _, rec := range records {
		if rec == nil || rec.ID == "" {
			continue
		}
		if _, exists := t.index[rec.ID]; exists {
			logger.Warn("Duplicate protein ID, keeping first occurrence", zap.String("uniprot_id", rec.ID))
			continue
		}
		t.index[rec.ID] = len(t.records)
		t.records = append(t.records, rec)
	}

	return t
}

// Len reports the number of distinct proteins.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the rows in original order. Callers must not mutate.
func (t *Table) Records() []*Record {
	return t.records
}

// Get looks a protein up by accession.
func (t *Table) Get(id string) (*Record, bool) {
	pos, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.records[pos], true
}

// IDs returns the accessions in original order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.records))
	for i, rec := range t.records {
		ids[i] = rec.ID
	}
	return ids
}

func splitTrimLower(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
