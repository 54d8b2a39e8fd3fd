package analyzer

import (
	"testing"
)

func TestAnalyzeTopKeywords(t *testing.T) {
	a := New(nil, 3)
	res := a.Analyze("Cats are mammals. Cats purr. Dogs bark.", 2)

	if len(res.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", res.Keywords)
	}
	if res.Keywords[0].Term != "cats" {
		t.Errorf("expected cats first, got %q", res.Keywords[0].Term)
	}
	if res.Keywords[0].Weight != 1 {
		t.Errorf("most frequent term should weigh 1, got %v", res.Keywords[0].Weight)
	}
	// "are" is a stopword, "cats" appears twice.
	if res.WordFrequencies["cats"] != 2 {
		t.Errorf("expected cats count 2, got %d", res.WordFrequencies["cats"])
	}
	if _, ok := res.WordFrequencies["are"]; ok {
		t.Error("stopword survived filtering")
	}
}

func TestAnalyzeTiesBreakLexicographically(t *testing.T) {
	a := New(nil, 3)
	res := a.Analyze("zebra apple zebra apple", 2)

	if len(res.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", res.Keywords)
	}
	if res.Keywords[0].Term != "apple" || res.Keywords[1].Term != "zebra" {
		t.Errorf("tie not broken lexicographically: %v", res.Keywords)
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	a := New(nil, 3)
	res := a.Analyze("", 10)
	if len(res.Keywords) != 0 || len(res.WordFrequencies) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestAnalyzeMinWordLen(t *testing.T) {
	a := New(nil, 4)
	res := a.Analyze("cat cat cat elephant elephant", 10)
	if _, ok := res.WordFrequencies["cat"]; ok {
		t.Error("short word survived min length filter")
	}
	if res.WordFrequencies["elephant"] != 2 {
		t.Errorf("expected elephant count 2, got %d", res.WordFrequencies["elephant"])
	}
}

func TestAnalyzeExtraStopwords(t *testing.T) {
	a := New([]string{"elephant"}, 3)
	res := a.Analyze("elephant elephant giraffe", 10)
	if _, ok := res.WordFrequencies["elephant"]; ok {
		t.Error("extra stopword survived filtering")
	}
	if res.WordFrequencies["giraffe"] != 1 {
		t.Errorf("expected giraffe count 1, got %d", res.WordFrequencies["giraffe"])
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, World! It's 2024.")
	want := []string{"hello", "world", "it", "s", "2024"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
