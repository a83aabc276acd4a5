// The per-category scoring functions. Each uses the simplest metric that
// respects its attribute's domain: min/max ratio for strictly-positive
// physical quantities, bounded linear difference for values with a known
// natural span, set overlap for annotation text, cosine for composition
// vectors. All outputs land in [0,1] so a linear weighted sum needs no
// per-category renormalization.

package similarity

import (
	"math"
	"strings"

	"github.com/protmerge/protsim/pkg/protein"
)

// ratioSimilarity scores two strictly-positive quantities as min/max.
func ratioSimilarity(v1, v2 float64) Score {
	if v1 <= 0 || v2 <= 0 {
		return NoData()
	}
	return Scored(math.Min(v1, v2) / math.Max(v1, v2))
}

// spanSimilarity scores two values on a finite natural span as
// 1 - |diff|/span, floored at 0.
func spanSimilarity(v1, v2, span float64) Score {
	return Scored(1.0 - math.Abs(v1-v2)/span)
}

// Ratio of shorter to longer sequence length.
func sequenceLengthSimilarity(a, b *protein.Record) Score {
	seq1 := a.Sequence.String()
	seq2 := b.Sequence.String()
	if seq1 == "" || seq2 == "" {
		return NoData()
	}
	return ratioSimilarity(float64(len(seq1)), float64(len(seq2)))
}

func molecularWeightSimilarity(a, b *protein.Record) Score {
	mw1, ok1 := a.MW.Float()
	mw2, ok2 := b.MW.Float()
	if !ok1 || !ok2 {
		return NoData()
	}
	return ratioSimilarity(mw1, mw2)
}

// Absolute pI difference normalized over the 0-14 pH span.
func isoelectricPointSimilarity(a, b *protein.Record) Score {
	pi1, ok1 := a.PI.Float()
	pi2, ok2 := b.PI.Float()
	if !ok1 || !ok2 {
		return NoData()
	}
	return spanSimilarity(pi1, pi2, 14.0)
}

// GRAVY conventionally spans -2 to +2, so differences normalize over 4.
func gravySimilarity(a, b *protein.Record) Score {
	g1, ok1 := a.Gravy.Float()
	g2, ok2 := b.Gravy.Float()
	if !ok1 || !ok2 {
		return NoData()
	}
	return spanSimilarity(g1, g2, 4.0)
}

// sequenceIdentitySimilarity compares the two proteins' own top-BLAST-hit
// identity percentages to each other. It does NOT align the two sequences
// against each other; the identity field is sourced per protein by the
// external BLAST step. Kept as-is to match established behavior.
func sequenceIdentitySimilarity(a, b *protein.Record) Score {
	id1, ok1 := a.Identity.Float()
	id2, ok2 := b.Identity.Float()
	if !ok1 || !ok2 {
		return NoData()
	}
	return spanSimilarity(id1, id2, 100.0)
}

// Jaccard overlap of the case-normalized keyword sets.
func functionalKeywordsSimilarity(a, b *protein.Record) Score {
	set1 := a.KeywordSet()
	set2 := b.KeywordSet()
	if len(set1) == 0 || len(set2) == 0 {
		return NoData()
	}

	intersection := 0
	for kw := range set1 {
		if _, ok := set2[kw]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	return Scored(float64(intersection) / float64(union))
}

// Full name match scores 1.0, genus-only match 0.5, anything else 0.
func organismSimilarity(a, b *protein.Record) Score {
	org1 := strings.ToLower(a.Organism.String())
	org2 := strings.ToLower(b.Organism.String())
	if org1 == "" || org2 == "" {
		return NoData()
	}

	if org1 == org2 {
		return Scored(1.0)
	}

	genus1 := strings.Fields(org1)
	genus2 := strings.Fields(org2)
	if len(genus1) == 0 || len(genus2) == 0 {
		return NoData()
	}
	if genus1[0] == genus2[0] {
		return Scored(0.5)
	}
	return Scored(0.0)
}

func extinctionCoefficientSimilarity(a, b *protein.Record) Score {
	ext1, ok1 := a.Ext.Float()
	ext2, ok2 := b.Ext.Float()
	if !ok1 || !ok2 {
		return NoData()
	}
	return ratioSimilarity(ext1, ext2)
}

// Cosine similarity of the 20-dimensional composition percentage vectors.
func aminoAcidSimilarity(a, b *protein.Record) Score {
	vec1, ok1 := a.CompositionVector()
	vec2, ok2 := b.CompositionVector()
	if !ok1 || !ok2 {
		return NoData()
	}
	return cosineSimilarity(vec1, vec2)
}

// cosineSimilarity floors negative cosines at 0; composition percentages are
// non-negative in practice so a negative value only arises from bad input.
func cosineSimilarity(vec1, vec2 []float64) Score {
	if len(vec1) != len(vec2) || len(vec1) == 0 {
		return NoData()
	}

	var dot, norm1, norm2 float64
	for i := range vec1 {
		dot += vec1[i] * vec2[i]
		norm1 += vec1[i] * vec1[i]
		norm2 += vec2[i] * vec2[i]
	}

	if norm1 == 0 || norm2 == 0 {
		return NoData()
	}

	return Scored(dot / (math.Sqrt(norm1) * math.Sqrt(norm2)))
}
