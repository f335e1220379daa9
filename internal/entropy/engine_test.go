package entropy

import "testing"

func TestShannonEntropy(t *testing.T) {
	t.Run("uniform_low_entropy", func(t *testing.T) {
		if got := shannonEntropy("aaaaaaaaaa"); got != 0 {
			t.Errorf("expected zero entropy for repeated character, got %f", got)
		}
	})

	t.Run("high_entropy_token", func(t *testing.T) {
		got := shannonEntropy("aZ3kQ9mN2pX7vR1wT8yL")
		if got < DefaultThreshold {
			t.Errorf("expected high entropy, got %f", got)
		}
	})

	t.Run("english_prose_below_threshold", func(t *testing.T) {
		got := shannonEntropy("aaaaaaaaaaaaaaaaaaab")
		if got >= DefaultThreshold {
			t.Errorf("expected low entropy for skewed text, got %f", got)
		}
	})
}

func TestEngineSanitize(t *testing.T) {
	engine := New(0, 0, "")

	t.Run("FlagsRandomToken", func(t *testing.T) {
		input := "api_key is aZ3kQ9mN2pX7vR1wT8yLbC5d please rotate it"
		output, matches, err := engine.Sanitize([]byte(input), nil)
		if err != nil {
			t.Fatalf("Sanitize: %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %+v", matches)
		}
		if matches[0].RuleName != RuleName {
			t.Errorf("rule_name = %q, want %q", matches[0].RuleName, RuleName)
		}
		if output == input {
			t.Error("expected output to differ from input")
		}
	})

	t.Run("LeavesOrdinaryProseAlone", func(t *testing.T) {
		input := "the quick brown fox jumps over the lazy dog repeatedly"
		output, matches, _ := engine.Sanitize([]byte(input), nil)
		if len(matches) != 0 {
			t.Errorf("expected no matches for ordinary prose, got %+v", matches)
		}
		if output != input {
			t.Errorf("output = %q, want unchanged %q", output, input)
		}
	})

	t.Run("OffsetsReferToStrippedInput", func(t *testing.T) {
		input := "token\x1b[31m aZ3kQ9mN2pX7vR1wT8yLbC5d \x1b[0mend"
		stripped := "token aZ3kQ9mN2pX7vR1wT8yLbC5d end"
		_, matches, _ := engine.Sanitize([]byte(input), nil)
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %+v", matches)
		}
		m := matches[0]
		if got := stripped[m.Start:m.End]; got != m.Original {
			t.Errorf("stripped[%d:%d] = %q, want %q", m.Start, m.End, got, m.Original)
		}
	})
}
