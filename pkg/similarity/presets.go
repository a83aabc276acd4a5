package similarity

import (
	"github.com/protmerge/protsim/pkg/protein"
)

// Weights maps categories to non-negative relative weights. Callers do not
// have to normalize; the engine renormalizes usable entries to sum to 1.
type Weights map[Category]float64

// Preset weight vectors, static data chosen to match the established
// analysis modes.
var presets = map[string]Weights{
	"basic": {
		SequenceLength:   0.25,
		MolecularWeight:  0.25,
		IsoelectricPoint: 0.25,
		GravyScore:       0.25,
	},
	"sequence": {
		SequenceLength:       0.30,
		SequenceIdentity:     0.30,
		AminoAcidComposition: 0.25,
		MolecularWeight:      0.15,
	},
	"biochemical": {
		MolecularWeight:       0.30,
		IsoelectricPoint:      0.25,
		GravyScore:            0.20,
		ExtinctionCoefficient: 0.15,
		SequenceLength:        0.10,
	},
	"functional": {
		FunctionalKeywords: 0.40,
		OrganismSimilarity: 0.25,
		SequenceIdentity:   0.20,
		MolecularWeight:    0.15,
	},
}

// Preset returns a copy of the named preset weight vector.
func Preset(name string) (Weights, bool) {
	preset, ok := presets[name]
	if !ok {
		return nil, false
	}
	out := make(Weights, len(preset))
	for c, w := range preset {
		out[c] = w
	}
	return out, true
}

// PresetNames lists the available presets in stable order.
func PresetNames() []string {
	return []string{"basic", "sequence", "biochemical", "functional"}
}

// adaptive weighting pulls in a category only when enough of the table has
// usable data in the field it reads
const (
	adaptiveCompleteness         = 0.3
	adaptiveOrganismCompleteness = 0.5
)

// AdaptiveWeights derives a default weight vector from per-field data
// completeness, so a caller who does not hand-tune weights is not diluted by
// categories that are mostly missing. Falls back to the basic preset when
// nothing clears the completeness bar.
func AdaptiveWeights(table *protein.Table) Weights {
	if table == nil || table.Len() == 0 {
		weights, _ := Preset("basic")
		return weights
	}

	weights := Weights{}

	if fieldCompleteness(table, func(r *protein.Record) protein.Value { return r.Sequence }) > adaptiveCompleteness {
		weights[SequenceLength] = 0.20
	}
	if fieldCompleteness(table, func(r *protein.Record) protein.Value { return r.MW }) > adaptiveCompleteness {
		weights[MolecularWeight] = 0.25
	}
	if fieldCompleteness(table, func(r *protein.Record) protein.Value { return r.PI }) > adaptiveCompleteness {
		weights[IsoelectricPoint] = 0.20
	}
	if fieldCompleteness(table, func(r *protein.Record) protein.Value { return r.Gravy }) > adaptiveCompleteness {
		weights[GravyScore] = 0.15
	}
	if fieldCompleteness(table, func(r *protein.Record) protein.Value { return r.Keywords }) > adaptiveCompleteness {
		weights[FunctionalKeywords] = 0.10
	}
	if fieldCompleteness(table, func(r *protein.Record) protein.Value { return r.Organism }) > adaptiveOrganismCompleteness {
		weights[OrganismSimilarity] = 0.10
	}

	if len(weights) == 0 {
		fallback, _ := Preset("basic")
		return fallback
	}

	return normalizeWeights(weights)
}

func fieldCompleteness(table *protein.Table, field func(*protein.Record) protein.Value) float64 {
	records := table.Records()
	if len(records) == 0 {
		return 0
	}

	valid := 0
	for _, rec := range records {
		if field(rec).Valid() {
			valid++
		}
	}
	return float64(valid) / float64(len(records))
}

// normalizeWeights rescales positive entries to sum to 1, dropping
// non-positive or unknown categories. Returns nil when nothing is usable.
func normalizeWeights(weights Weights) Weights {
	total := 0.0
	valid := Weights{}

	for category, w := range weights {
		if w <= 0 || !category.Known() {
			continue
		}
		valid[category] = w
		total += w
	}

	if total == 0 {
		return nil
	}

	for category := range valid {
		valid[category] /= total
	}
	return valid
}
