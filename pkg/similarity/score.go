// Package similarity ranks proteins in a loaded annotation table by
// multi-dimensional similarity to a chosen central protein. Category scores
// are precomputed for every unordered pair, then combined per query under a
// caller-supplied weight vector.
package similarity

import (
	"math"

	"github.com/protmerge/protsim/pkg/protein"
)

// Category names one attribute dimension that proteins are compared on.
type Category string

const (
	SequenceLength        Category = "sequence_length"
	MolecularWeight       Category = "molecular_weight"
	IsoelectricPoint      Category = "isoelectric_point"
	GravyScore            Category = "gravy_score"
	SequenceIdentity      Category = "sequence_identity"
	FunctionalKeywords    Category = "functional_keywords"
	OrganismSimilarity    Category = "organism_similarity"
	ExtinctionCoefficient Category = "extinction_coefficient"
	AminoAcidComposition  Category = "amino_acid_composition"
)

// AllCategories is the fixed library of scoring dimensions, in stable order.
var AllCategories = []Category{
	SequenceLength,
	MolecularWeight,
	IsoelectricPoint,
	GravyScore,
	SequenceIdentity,
	FunctionalKeywords,
	OrganismSimilarity,
	ExtinctionCoefficient,
	AminoAcidComposition,
}

// CategoryDescriptions maps each category to a short user-facing label.
var CategoryDescriptions = map[Category]string{
	SequenceLength:        "Sequence length similarity",
	MolecularWeight:       "Molecular weight similarity",
	IsoelectricPoint:      "Isoelectric point similarity",
	GravyScore:            "Hydrophobicity (GRAVY) similarity",
	SequenceIdentity:      "BLAST sequence identity similarity",
	FunctionalKeywords:    "Functional annotation similarity",
	OrganismSimilarity:    "Organism/species similarity",
	ExtinctionCoefficient: "Extinction coefficient similarity",
	AminoAcidComposition:  "Amino acid composition similarity",
}

// Known reports whether name is an implemented category.
func (c Category) Known() bool {
	_, ok := scoreFuncs[c]
	return ok
}

// Score is the outcome of one category comparison for one protein pair.
// A pair with unusable data in a category yields NoData rather than a real
// zero, so "genuinely dissimilar" and "nothing to compare" stay apart in
// reported sub-scores. The weighted combination treats NoData by leaving the
// category out of both numerator and denominator.
type Score struct {
	Value float64 `json:"value"`
	Known bool    `json:"known"`
}

// Scored wraps a computed similarity, clamped into [0,1]. NaN degrades to
// NoData.
func Scored(v float64) Score {
	if math.IsNaN(v) {
		return NoData()
	}
	return Score{Value: math.Max(0, math.Min(1, v)), Known: true}
}

// NoData marks a category that could not be compared for a pair.
func NoData() Score {
	return Score{}
}

// ScoreFunc compares one attribute category of two proteins. Implementations
// are pure, symmetric in their arguments, and never panic: any missing or
// unparseable attribute degrades to NoData.
type ScoreFunc func(a, b *protein.Record) Score

var scoreFuncs = map[Category]ScoreFunc{
	SequenceLength:        sequenceLengthSimilarity,
	MolecularWeight:       molecularWeightSimilarity,
	IsoelectricPoint:      isoelectricPointSimilarity,
	GravyScore:            gravySimilarity,
	SequenceIdentity:      sequenceIdentitySimilarity,
	FunctionalKeywords:    functionalKeywordsSimilarity,
	OrganismSimilarity:    organismSimilarity,
	ExtinctionCoefficient: extinctionCoefficientSimilarity,
	AminoAcidComposition:  aminoAcidSimilarity,
}
