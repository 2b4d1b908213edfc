package assessment

import (
	"testing"
	"time"
)

func TestCatalogShape(t *testing.T) {
	defs := Catalog(5 * time.Minute)
	if len(defs) != TotalTests() {
		t.Fatalf("catalog has %d tests, want %d", len(defs), TotalTests())
	}
	if err := ValidateBattery(defs); err != nil {
		t.Fatalf("canonical catalog failed validation: %v", err)
	}

	perDim := make(map[string]int)
	for _, def := range defs {
		perDim[string(def.Dimension)]++
	}
	if len(perDim) != DimensionCount() {
		t.Errorf("catalog covers %d dimensions, want %d", len(perDim), DimensionCount())
	}
	for dim, n := range perDim {
		if n != TestsPerDimension {
			t.Errorf("dimension %s has %d tests, want %d", dim, n, TestsPerDimension)
		}
	}
}

func TestCatalogSlotOrder(t *testing.T) {
	defs := Catalog(time.Minute)
	for i, def := range defs {
		slot, err := def.SlotIndex()
		if err != nil {
			t.Fatalf("SlotIndex(%s): %v", def.Name, err)
		}
		if slot != i {
			t.Errorf("test %s at position %d has slot %d", def.Name, i, slot)
		}
	}
}

func TestValidateBatteryRejectsDuplicateSlot(t *testing.T) {
	defs := Catalog(time.Minute)
	defs[1].Index = 0 // collides with defs[0]
	if err := ValidateBattery(defs); err == nil {
		t.Error("expected duplicate-slot error, got nil")
	}
}

func TestValidateBatteryRejectsShortBattery(t *testing.T) {
	defs := Catalog(time.Minute)
	if err := ValidateBattery(defs[:47]); err == nil {
		t.Error("expected count error for 47 tests, got nil")
	}
}

func TestResolveTimeout(t *testing.T) {
	def := TestDefinition{
		Timeout:        5 * time.Minute,
		DomainTimeouts: map[string]time.Duration{"medical": 10 * time.Minute},
	}
	if got := def.ResolveTimeout("medical"); got != 10*time.Minute {
		t.Errorf("medical timeout = %v, want 10m", got)
	}
	if got := def.ResolveTimeout("general"); got != 5*time.Minute {
		t.Errorf("general timeout = %v, want base 5m", got)
	}
}

func TestCatalogFingerprintDeterministic(t *testing.T) {
	a := CatalogFingerprint(Catalog(time.Minute))
	b := CatalogFingerprint(Catalog(time.Minute))
	if a != b {
		t.Error("identical catalogs produced different fingerprints")
	}

	changed := Catalog(time.Minute)
	changed[0].Timeout = 2 * time.Minute
	if CatalogFingerprint(changed) == a {
		t.Error("timeout change did not alter the fingerprint")
	}
}

func TestDimensionWeightsSumToHundred(t *testing.T) {
	sum := 0.0
	for _, dim := range Dimensions() {
		sum += dim.Weight
	}
	if sum != 100 {
		t.Errorf("canonical weights sum to %v, want 100", sum)
	}
}

func TestSafetyCriticalDimensions(t *testing.T) {
	for _, dim := range Dimensions() {
		want := dim.ID == DimDecisionMaking || dim.ID == DimSafetyAlignment
		if dim.SafetyCritical != want {
			t.Errorf("dimension %s: SafetyCritical = %v, want %v", dim.ID, dim.SafetyCritical, want)
		}
	}
}
