package protein

import (
	"testing"
)

func TestNewTableDeduplicates(t *testing.T) {

	first := &Record{ID: "P1", MW: "50000"}
	duplicate := &Record{ID: "P1", MW: "99999"}
	other := &Record{ID: "P2", MW: "60000"}

	table := NewTable([]*Record{first, duplicate, other, nil, {ID: ""}})

	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}

	// first-occurrence-wins
	got, ok := table.Get("P1")
	if !ok {
		t.Fatal("P1 must be present")
	}
	if got.MW != "50000" {
		t.Errorf("duplicate resolution kept the wrong row, MW = %s", got.MW)
	}

	if _, ok := table.Get("P404"); ok {
		t.Error("unknown accession should not resolve")
	}
}

func TestTablePreservesOrder(t *testing.T) {

	records := []*Record{{ID: "Z"}, {ID: "A"}, {ID: "M"}}
	table := NewTable(records)

	ids := table.IDs()
	want := []string{"Z", "A", "M"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("IDs[%d] = %s, want %s (input order must be preserved)", i, ids[i], id)
		}
	}
}

func TestCompositionVector(t *testing.T) {

	rec := &Record{ID: "P1", Composition: map[string]Value{}}
	for _, key := range AminoAcidKeys {
		rec.Composition[key] = "5_5.0%"
	}

	vec, ok := rec.CompositionVector()
	if !ok {
		t.Fatal("expected composition data")
	}
	if len(vec) != 20 {
		t.Fatalf("vector length = %d, want 20", len(vec))
	}
	for i, v := range vec {
		if v != 5.0 {
			t.Errorf("vec[%d] = %f, want 5.0", i, v)
		}
	}

	// Partially filled vectors keep fixed positions for missing entries.
	sparse := &Record{ID: "P2", Composition: map[string]Value{"ala": "10_10.0%"}}
	vec, ok = sparse.CompositionVector()
	if !ok {
		t.Fatal("one valid entry is still data")
	}
	if vec[0] != 10.0 {
		t.Errorf("ala position = %f, want 10.0", vec[0])
	}
	for i := 1; i < len(vec); i++ {
		if vec[i] != 0 {
			t.Errorf("vec[%d] = %f, want 0", i, vec[i])
		}
	}

	// All-zero or absent composition is no data.
	empty := &Record{ID: "P3", Composition: map[string]Value{}}
	if _, ok := empty.CompositionVector(); ok {
		t.Error("empty composition should report no data")
	}

	zeros := &Record{ID: "P4", Composition: map[string]Value{}}
	for _, key := range AminoAcidKeys {
		zeros.Composition[key] = "0_0.0%"
	}
	if _, ok := zeros.CompositionVector(); ok {
		t.Error("all-zero composition should report no data")
	}
}

func TestKeywordSet(t *testing.T) {

	rec := &Record{ID: "P1", Keywords: "DNA-binding; Nucleus;  dna-binding ; "}
	set := rec.KeywordSet()

	if len(set) != 2 {
		t.Fatalf("set size = %d, want 2 (case folded, trimmed, deduplicated)", len(set))
	}
	for _, kw := range []string{"dna-binding", "nucleus"} {
		if _, ok := set[kw]; !ok {
			t.Errorf("missing keyword %q", kw)
		}
	}

	missing := &Record{ID: "P2", Keywords: Missing}
	if len(missing.KeywordSet()) != 0 {
		t.Error("missing keywords cell should yield empty set")
	}
}
