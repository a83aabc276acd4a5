package render

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/protmerge/protsim/pkg/similarity"
)

func TestWriteRankingCSV(t *testing.T) {

	rows := []similarity.ResultRow{
		{
			ProteinID:   "P04637",
			Overall:     0.91234567,
			DataQuality: 0.875,
			Scores: map[similarity.Category]similarity.Score{
				similarity.MolecularWeight: similarity.Scored(0.9090909),
				similarity.GravyScore:      similarity.NoData(),
			},
		},
		{
			ProteinID:   "P38398",
			Overall:     0.5,
			DataQuality: 0.25,
			Scores:      map[similarity.Category]similarity.Score{},
		},
	}

	var buf bytes.Buffer
	if err := WriteRankingCSV(&buf, rows); err != nil {
		t.Fatalf("WriteRankingCSV failed: %v", err)
	}

	parsed, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(parsed) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(parsed))
	}

	header := parsed[0]
	wantCols := 4 + len(similarity.AllCategories)
	if len(header) != wantCols {
		t.Fatalf("header has %d columns, want %d", len(header), wantCols)
	}
	if header[0] != "Rank" || header[1] != "Protein ID" {
		t.Errorf("unexpected header start: %v", header[:2])
	}

	first := parsed[1]
	if first[0] != "1" || first[1] != "P04637" {
		t.Errorf("first row = %v", first[:2])
	}
	if first[2] != "0.9123" {
		t.Errorf("overall rendered as %q, want 4 decimals", first[2])
	}
	if first[3] != "0.875" {
		t.Errorf("quality rendered as %q, want 3 decimals", first[3])
	}

	// locate category columns
	mwCol, gravyCol := -1, -1
	for i, col := range header {
		switch col {
		case string(similarity.MolecularWeight):
			mwCol = i
		case string(similarity.GravyScore):
			gravyCol = i
		}
	}
	if mwCol < 0 || gravyCol < 0 {
		t.Fatalf("category columns missing from header: %v", header)
	}

	if first[mwCol] != "0.9091" {
		t.Errorf("mw sub-score = %q, want 0.9091", first[mwCol])
	}
	if first[gravyCol] != "" {
		t.Errorf("no-data sub-score must render empty, got %q", first[gravyCol])
	}

	// a row with no scores at all renders empty cells across categories
	second := parsed[2]
	for i := 4; i < wantCols; i++ {
		if second[i] != "" {
			t.Errorf("column %d = %q, want empty", i, second[i])
		}
	}
}
