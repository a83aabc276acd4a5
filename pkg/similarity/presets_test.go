package similarity

import (
	"math"
	"testing"

	"github.com/protmerge/protsim/pkg/protein"
)

func TestPresets(t *testing.T) {

	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			weights, ok := Preset(name)
			if !ok {
				t.Fatalf("preset %q missing", name)
			}

			sum := 0.0
			for category, w := range weights {
				if !category.Known() {
					t.Errorf("preset %q references unknown category %q", name, category)
				}
				if w <= 0 {
					t.Errorf("preset %q has non-positive weight for %q", name, category)
				}
				sum += w
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("preset %q weights sum to %f, want 1.0", name, sum)
			}
		})
	}

	if _, ok := Preset("no_such_preset"); ok {
		t.Error("unknown preset name must not resolve")
	}

	// Preset returns a copy; mutating it must not poison later calls.
	first, _ := Preset("basic")
	first[MolecularWeight] = 99
	second, _ := Preset("basic")
	if second[MolecularWeight] == 99 {
		t.Error("Preset must return a fresh copy")
	}
}

func TestAdaptiveWeights(t *testing.T) {

	t.Run("CompleteFieldsOnly", func(t *testing.T) {
		// mw and pi fully populated, everything else missing: only their
		// two categories survive, renormalized to sum to 1.
		var records []*protein.Record
		for _, id := range []string{"A", "B", "C"} {
			r := newRecord(id)
			r.MW, r.PI = "50000", "7.0"
			records = append(records, r)
		}
		table := protein.NewTable(records)

		weights := AdaptiveWeights(table)

		if len(weights) != 2 {
			t.Fatalf("expected 2 categories, got %v", weights)
		}
		// source ratios 0.25 : 0.20
		if math.Abs(weights[MolecularWeight]-0.25/0.45) > 1e-9 {
			t.Errorf("mw weight = %f, want %f", weights[MolecularWeight], 0.25/0.45)
		}
		if math.Abs(weights[IsoelectricPoint]-0.20/0.45) > 1e-9 {
			t.Errorf("pi weight = %f, want %f", weights[IsoelectricPoint], 0.20/0.45)
		}
	})

	t.Run("OrganismNeedsHigherCompleteness", func(t *testing.T) {
		// organism present in 1 of 3 rows (33%): above the general 30% bar
		// but below the 50% organism bar, so it stays out.
		records := []*protein.Record{newRecord("A"), newRecord("B"), newRecord("C")}
		for _, r := range records {
			r.MW = "50000"
		}
		records[0].Organism = "Homo sapiens"
		table := protein.NewTable(records)

		weights := AdaptiveWeights(table)

		if _, ok := weights[OrganismSimilarity]; ok {
			t.Errorf("organism at 33%% completeness must be excluded, got %v", weights)
		}
		if _, ok := weights[MolecularWeight]; !ok {
			t.Errorf("mw at 100%% completeness must be included, got %v", weights)
		}
	})

	t.Run("AllMissingFallsBackToBasic", func(t *testing.T) {
		table := protein.NewTable([]*protein.Record{newRecord("A"), newRecord("B")})

		weights := AdaptiveWeights(table)
		basic, _ := Preset("basic")

		if len(weights) != len(basic) {
			t.Fatalf("expected basic preset fallback, got %v", weights)
		}
		for category, w := range basic {
			if weights[category] != w {
				t.Errorf("fallback weight for %s = %f, want %f", category, weights[category], w)
			}
		}
	})

	t.Run("NilTable", func(t *testing.T) {
		weights := AdaptiveWeights(nil)
		if len(weights) == 0 {
			t.Error("nil table should still yield the basic preset")
		}
	})
}

func TestNormalizeWeights(t *testing.T) {

	tests := []struct {
		name     string
		input    Weights
		expected Weights
	}{
		{
			name:     "AlreadyNormalized",
			input:    Weights{MolecularWeight: 0.5, IsoelectricPoint: 0.5},
			expected: Weights{MolecularWeight: 0.5, IsoelectricPoint: 0.5},
		},
		{
			name:     "Rescales",
			input:    Weights{MolecularWeight: 2, IsoelectricPoint: 2},
			expected: Weights{MolecularWeight: 0.5, IsoelectricPoint: 0.5},
		},
		{
			name:     "DropsNonPositiveAndUnknown",
			input:    Weights{MolecularWeight: 1, GravyScore: 0, SequenceLength: -3, Category("bogus"): 2},
			expected: Weights{MolecularWeight: 1},
		},
		{
			name:     "NothingUsable",
			input:    Weights{GravyScore: 0, Category("bogus"): 2},
			expected: nil,
		},
		{
			name:     "Empty",
			input:    Weights{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWeights(tt.input)

			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for category, w := range tt.expected {
				if math.Abs(got[category]-w) > 1e-9 {
					t.Errorf("weight[%s] = %f, want %f", category, got[category], w)
				}
			}
		})
	}
}
