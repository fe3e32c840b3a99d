package emissions

import "testing"

func TestSectorTableDerivesLookups(t *testing.T) {
	if len(sectorLabels) != len(sectorTable) {
		t.Fatalf("expected %d labels, got %d", len(sectorTable), len(sectorLabels))
	}
	known := make(map[string]bool, len(industryOrder))
	for _, name := range industryOrder {
		known[name] = true
	}
	seen := make(map[string]bool, len(sectorTable))
	for _, s := range sectorTable {
		if seen[s.slug] {
			t.Errorf("duplicate sector slug %q", s.slug)
		}
		seen[s.slug] = true
		if s.label == "" {
			t.Errorf("sector %q has no label", s.slug)
		}
		if !known[s.industry] {
			t.Errorf("sector %q has unknown industry %q", s.slug, s.industry)
		}
		if got := sectorIndustry[s.slug]; got != s.industry {
			t.Errorf("industry lookup for %q = %q, want %q", s.slug, got, s.industry)
		}
		if got := sectorLabels[s.slug]; got != s.label {
			t.Errorf("label lookup for %q = %q, want %q", s.slug, got, s.label)
		}
	}
}
