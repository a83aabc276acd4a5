package similarity

import (
	"github.com/protmerge/protsim/pkg/protein"
)

// FieldSummary reports how many proteins carry usable data in one field.
type FieldSummary struct {
	Field        string  `json:"field"`
	Valid        int     `json:"valid"`
	Total        int     `json:"total"`
	Completeness float64 `json:"completeness"`
}

var summaryFields = []struct {
	name string
	get  func(*protein.Record) protein.Value
}{
	{"sequence", func(r *protein.Record) protein.Value { return r.Sequence }},
	{"mw", func(r *protein.Record) protein.Value { return r.MW }},
	{"pi", func(r *protein.Record) protein.Value { return r.PI }},
	{"gravy", func(r *protein.Record) protein.Value { return r.Gravy }},
	{"ext", func(r *protein.Record) protein.Value { return r.Ext }},
	{"function", func(r *protein.Record) protein.Value { return r.Function }},
	{"keywords", func(r *protein.Record) protein.Value { return r.Keywords }},
	{"organism", func(r *protein.Record) protein.Value { return r.Organism }},
}

// Summarize reports per-field data availability for a table, the numbers a
// user looks at before deciding on weights.
func Summarize(table *protein.Table) []FieldSummary {
	total := 0
	if table != nil {
		total = table.Len()
	}

	summaries := make([]FieldSummary, 0, len(summaryFields))
	for _, field := range summaryFields {
		valid := 0
		if table != nil {
			for _, rec := range table.Records() {
				if field.get(rec).Valid() {
					valid++
				}
			}
		}

		completeness := 0.0
		if total > 0 {
			completeness = float64(valid) / float64(total)
		}

		summaries = append(summaries, FieldSummary{
			Field:        field.name,
			Valid:        valid,
			Total:        total,
			Completeness: completeness,
		})
	}

	return summaries
}
