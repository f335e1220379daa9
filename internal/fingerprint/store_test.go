package fingerprint

import (
	"testing"
	"time"
)

func TestFeatureHashDeterministic(t *testing.T) {
	a := FeatureHash("aZ3kQ9mN2pX7vR1wT8yL")
	b := FeatureHash("aZ3kQ9mN2pX7vR1wT8yL")
	c := FeatureHash("completely different token")

	if len(a) != Dimensions {
		t.Fatalf("expected %d dimensions, got %d", Dimensions, len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same input produced different vectors at index %d: %f != %f", i, a[i], b[i])
		}
	}

	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different inputs produced identical vectors")
	}
}

func TestStoreRecordAndSearch(t *testing.T) {
	store, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := store.Record("high_entropy_token", "aZ3kQ9mN2pX7vR1wT8yL", now); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record("high_entropy_token", "totallyDifferentSecretValue1", now); err != nil {
		t.Fatalf("Record: %v", err)
	}

	matches, err := store.Search("aZ3kQ9mN2pX7vR1wT8yL", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Sample != "aZ3kQ9mN2pX7vR1wT8yL" {
		t.Errorf("expected exact nearest match to be the identical token, got %q (distance %f)", matches[0].Sample, matches[0].Distance)
	}
	if matches[0].Distance > 0.0001 {
		t.Errorf("expected near-zero distance for identical token, got %f", matches[0].Distance)
	}
}
