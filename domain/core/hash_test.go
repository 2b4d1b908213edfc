package core

import "testing"

// TestComputeFieldHashOrderIndependence tests that insertion order never leaks
// into the fingerprint
func TestComputeFieldHashOrderIndependence(t *testing.T) {
	a := ComputeFieldHash(map[string]interface{}{"alpha": 1, "beta": "x", "gamma": 2.5})
	b := ComputeFieldHash(map[string]interface{}{"gamma": 2.5, "alpha": 1, "beta": "x"})
	if !a.Equals(b) {
		t.Errorf("same fields hashed differently: %s vs %s", a, b)
	}
}

// TestComputeFieldHashSensitivity tests that any field change alters the hash
func TestComputeFieldHashSensitivity(t *testing.T) {
	base := ComputeFieldHash(map[string]interface{}{"alpha": 1})
	changedValue := ComputeFieldHash(map[string]interface{}{"alpha": 2})
	changedKey := ComputeFieldHash(map[string]interface{}{"beta": 1})

	if base.Equals(changedValue) {
		t.Error("value change did not alter the hash")
	}
	if base.Equals(changedKey) {
		t.Error("key change did not alter the hash")
	}
}

// TestNewHashStable tests hash determinism over raw bytes
func TestNewHashStable(t *testing.T) {
	if NewHash([]byte("attest")) != NewHash([]byte("attest")) {
		t.Error("identical bytes hashed differently")
	}
	if NewHash([]byte("attest")).IsEmpty() {
		t.Error("hash of non-empty data is empty")
	}
}
