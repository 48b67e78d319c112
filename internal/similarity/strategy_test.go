package similarity

import (
	"errors"
	"strings"
	"testing"
)

func TestStrategyByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", StrategyTiered},
		{"tiered", StrategyTiered},
		{" Flat-Bonus ", StrategyFlatBonus},
		{"jaccard", StrategyJaccard},
		{"COSINE", StrategyCosine},
	}
	for _, tt := range tests {
		strategy, err := StrategyByName(tt.name)
		if err != nil {
			t.Fatalf("StrategyByName(%q) error: %v", tt.name, err)
		}
		if strategy.Name() != tt.want {
			t.Fatalf("StrategyByName(%q) = %s, want %s", tt.name, strategy.Name(), tt.want)
		}
	}
}

func TestStrategyByNameUnknown(t *testing.T) {
	_, err := StrategyByName("levenshtein")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
	if !strings.Contains(err.Error(), "cosine, flat-bonus, jaccard, tiered") {
		t.Fatalf("expected available names in error, got %q", err.Error())
	}
}

func TestFlatBonusScore(t *testing.T) {
	a := result(item("bank", 1.0), item("finance", 0.7))
	b := result(item("bank", 0.7), item("river", 1.0))

	// (1.0+0.7)/2*1.3 = 1.105 over min total 1.7
	got := FlatBonus{}.Score(a, b)
	if !approxEqual(got, 1.105/1.7) {
		t.Fatalf("flat bonus score = %v, want %v", got, 1.105/1.7)
	}
	if tiered := (Tiered{}).Score(a, b); approxEqual(tiered, got) {
		t.Fatalf("expected tiered and flat bonus to differ on cross-tier anchor")
	}
}

func TestJaccardScore(t *testing.T) {
	a := result(item("bank", 1.0), item("finance", 0.7))
	b := result(item("bank", 0.7), item("river", 1.0))

	// min sum 0.7, max sum 1.0+0.7+1.0
	got := Jaccard{}.Score(a, b)
	if !approxEqual(got, 0.7/2.7) {
		t.Fatalf("jaccard score = %v, want %v", got, 0.7/2.7)
	}
	if got := (Jaccard{}).Score(result(), result()); got != 0 {
		t.Fatalf("jaccard of empty fingerprints = %v, want 0", got)
	}
	if got := (Jaccard{}).Score(a, a); !approxEqual(got, 1) {
		t.Fatalf("jaccard self score = %v, want 1", got)
	}
}

func TestStrategiesStayInRange(t *testing.T) {
	a := result(item("bank", 1.0), item("money", 1.0), item("vault", 1.0))
	b := result(item("bank", 1.0), item("money", 1.0), item("vault", 1.0), item("loan", 0.3))
	for _, name := range StrategyNames() {
		strategy, err := StrategyByName(name)
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
		score := strategy.Score(a, b)
		if score < 0 || score > 1 {
			t.Fatalf("%s score out of range: %v", name, score)
		}
	}
}

func TestCosineScore(t *testing.T) {
	a := result(item("bank", 1.0), item("finance", 0.7))
	b := result(item("bank", 0.7), item("river", 1.0))

	// dot 0.7 over |a||b| = 1.49
	want := 0.7 / 1.49
	if got := (Cosine{}).Score(a, b); !approxEqual(got, want) {
		t.Fatalf("cosine score = %v, want %v", got, want)
	}
	if got := (Cosine{}).Score(a, a); !approxEqual(got, 1) {
		t.Fatalf("cosine self score = %v, want 1", got)
	}
	if got := (Cosine{}).Score(a, result(item("shore", 1.0))); got != 0 {
		t.Fatalf("cosine of disjoint fingerprints = %v, want 0", got)
	}
	if got := (Cosine{}).Score(a, result(item("bank", 0))); got != 0 {
		t.Fatalf("cosine against zero vector = %v, want 0", got)
	}
}

func TestStrategiesExactlySymmetric(t *testing.T) {
	a := result(item("x", 0.1), item("y", 0.2), item("z", 0.3), item("p", 0.7))
	b := result(item("z", 0.3), item("y", 0.2), item("x", 0.1), item("q", 0.7))
	for _, name := range StrategyNames() {
		strategy, err := StrategyByName(name)
		if err != nil {
			t.Fatalf("StrategyByName(%q): %v", name, err)
		}
		ab, ba := strategy.Score(a, b), strategy.Score(b, a)
		if ab != ba {
			t.Fatalf("%s not symmetric: %v vs %v", name, ab, ba)
		}
		for range 20 {
			if again := strategy.Score(a, b); again != ab {
				t.Fatalf("%s not deterministic: %v then %v", name, ab, again)
			}
		}
	}
}
