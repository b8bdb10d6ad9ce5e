package telegram

import "testing"

func TestQuizLengthCallbackRoundTrip(t *testing.T) {
	for _, n := range []int{5, 10, 50} {
		got, ok := parseQuizLengthCallback(buildQuizLengthCallback(n))
		if !ok || got != n {
			t.Fatalf("round trip for %d failed: got %d, ok=%v", n, got, ok)
		}
	}
}

func TestParseQuizLengthCallbackRejectsGarbage(t *testing.T) {
	for _, data := range []string{"", "quiz:len:", "quiz:len:abc", "quiz:len:-5", "quiz:len:0", "quiz:again", "name:3"} {
		if _, ok := parseQuizLengthCallback(data); ok {
			t.Fatalf("expected %q to be rejected", data)
		}
	}
}
