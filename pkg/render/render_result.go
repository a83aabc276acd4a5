// CSV rendering of ranked similarity results. The engine never persists its
// own output; this is the lossless export shape consumed by spreadsheets.

package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/protmerge/protsim/pkg/similarity"
)

// WriteRankingCSV writes one row per ranked protein: rank, accession,
// overall score (4 decimals), data quality (3 decimals), then every category
// sub-score. A category that had no data for the pair renders as an empty
// cell, keeping "no data" distinguishable from a genuine 0.
func WriteRankingCSV(w io.Writer, rows []similarity.ResultRow) error {
	cw := csv.NewWriter(w)

	header := []string{"Rank", "Protein ID", "Overall Similarity", "Data Quality"}
	for _, category := range similarity.AllCategories {
		header = append(header, string(category))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, row := range rows {
		record := []string{
			fmt.Sprintf("%d", i+1),
			row.ProteinID,
			fmt.Sprintf("%.4f", row.Overall),
			fmt.Sprintf("%.3f", row.DataQuality),
		}
		for _, category := range similarity.AllCategories {
			score, ok := row.Scores[category]
			if !ok || !score.Known {
				record = append(record, "")
				continue
			}
			record = append(record, fmt.Sprintf("%.4f", score.Value))
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
