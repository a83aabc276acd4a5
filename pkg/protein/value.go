// Missing-value handling for protein annotation cells.
//
// Upstream collectors write the literal placeholder "NO VALUE FOUND" (and a
// few other spellings) into fields they could not fill. Every read of a field
// goes through Value so missingness is decided in exactly one place.

package protein

import (
	"strconv"
	"strings"
)

// Missing is the canonical placeholder written by the acquisition pipeline
// for a field that was collected but came back empty.
const Missing = "NO VALUE FOUND"

// Value is one annotation cell as handed over by the upstream collectors.
// The zero value is treated as missing.
type Value string

// placeholder spellings that count as "no data", compared case-insensitively
var invalidValues = map[string]struct{}{
	"":               {},
	"NO VALUE FOUND": {},
	"NAN":            {},
	"NONE":           {},
	"N/A":            {},
	"UNKNOWN":        {},
	"NULL":           {},
}

// Valid reports whether the cell holds usable data.
func (v Value) Valid() bool {
	normalized := strings.ToUpper(strings.TrimSpace(string(v)))
	_, invalid := invalidValues[normalized]
	return !invalid
}

// String returns the trimmed cell content, or "" for a missing cell.
func (v Value) String() string {
	if !v.Valid() {
		return ""
	}
	return strings.TrimSpace(string(v))
}

// Float parses the cell as a number. The second return is false when the
// cell is missing or not parseable.
func (v Value) Float() (float64, bool) {
	if !v.Valid() {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Percentage extracts the percentage part of a combined "count_percent%"
// composition cell, e.g. "20_12.3%" -> 12.3.
func (v Value) Percentage() (float64, bool) {
	if !v.Valid() {
		return 0, false
	}
	raw := strings.TrimSpace(string(v))
	_, pct, found := strings.Cut(raw, "_")
	if !found || !strings.HasSuffix(pct, "%") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(pct, "%"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
