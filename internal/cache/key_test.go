package cache

import "testing"

func TestKeyDeterministic(t *testing.T) {
	a := Key("quietline", []byte("hello world"), "fp-v1")
	b := Key("quietline", []byte("hello world"), "fp-v1")
	if a != b {
		t.Errorf("same inputs produced different keys: %q != %q", a, b)
	}
}

func TestKeyVariesWithRulesetFingerprint(t *testing.T) {
	a := Key("quietline", []byte("hello world"), "fp-v1")
	b := Key("quietline", []byte("hello world"), "fp-v2")
	if a == b {
		t.Error("changing the ruleset fingerprint did not change the key")
	}
}

func TestKeyVariesWithContent(t *testing.T) {
	a := Key("quietline", []byte("hello world"), "fp-v1")
	b := Key("quietline", []byte("goodbye world"), "fp-v1")
	if a == b {
		t.Error("changing the content did not change the key")
	}
}
