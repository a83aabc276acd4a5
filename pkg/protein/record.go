package protein

// AminoAcidKeys is the fixed column order of the 20 standard amino-acid
// composition fields. Composition vectors are always built in this order.
var AminoAcidKeys = []string{
	"ala", "arg", "asn", "asp", "cys", "gln", "glu", "gly",
	"his", "ile", "leu", "lys", "met", "phe", "pro", "ser",
	"thr", "trp", "tyr", "val",
}

// Record is one row of the merged annotation table, one protein per row.
// Every attribute is a raw Value so that the upstream "NO VALUE FOUND"
// convention survives until the moment the field is actually read.
type Record struct {
	ID       string `json:"uniprot_id"` // unique accession, e.g. P04637
	Organism Value  `json:"organism"`
	GeneName Value  `json:"gene_name"`
	Function Value  `json:"function"`
	Sequence Value  `json:"sequence"`
	Identity Value  `json:"identity"` // % identity of the protein's own top BLAST hit
	MW       Value  `json:"mw"`
	PI       Value  `json:"pi"`
	Gravy    Value  `json:"gravy"`
	Ext      Value  `json:"ext"`
	Keywords Value  `json:"keywords"` // semicolon-delimited annotation terms

	// Composition holds the combined "count_percent%" cells keyed by the
	// lowercase three-letter code, e.g. "ala" -> "20_12.3%".
	Composition map[string]Value `json:"composition"`
}

// CompositionVector extracts the 20 percentage values in AminoAcidKeys order.
// The second return is false when no amino-acid data is present at all.
func (r *Record) CompositionVector() ([]float64, bool) {
	vec := make([]float64, len(AminoAcidKeys))
	any := false

	for i, key := range AminoAcidKeys {
		pct, ok := r.Composition[key].Percentage()
		if !ok {
			continue
		}
		vec[i] = pct
		if pct > 0 {
			any = true
		}
	}

	return vec, any
}

// KeywordSet parses the semicolon-delimited keyword cell into a
// case-normalized set. Empty when the cell is missing.
func (r *Record) KeywordSet() map[string]struct{} {
	set := make(map[string]struct{})
	raw := r.Keywords.String()
	if raw == "" {
		return set
	}

	for _, kw := range splitTrimLower(raw, ";") {
		set[kw] = struct{}{}
	}
	return set
}
