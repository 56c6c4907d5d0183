package generator_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/jonesrussell/domain-scout/internal/generator"
)

// largeMax lifts the result cap so every strategy gets to run.
const largeMax = 500

func newTestGenerator(t *testing.T) *generator.Generator {
	t.Helper()
	return generator.New(generator.DefaultConfig())
}

func TestGenerate_BareKeywordComesFirst(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"pet"}, generator.Options{
		TLDs:       []string{".com", ".io"},
		MaxResults: largeMax,
	})

	if len(got) == 0 {
		t.Fatal("expected candidates, got none")
	}
	if got[0] != "pet.com" {
		t.Fatalf("expected pet.com first, got %q", got[0])
	}
	if got[1] != "pet.io" {
		t.Fatalf("expected pet.io second, got %q", got[1])
	}
	if !slices.Contains(got, "getpet.com") {
		t.Fatal("expected prefixed candidate getpet.com")
	}
	if !slices.Contains(got, "petly.com") {
		t.Fatal("expected suffixed candidate petly.com")
	}
}

func TestGenerate_NormalizesAndDeduplicatesKeywords(t *testing.T) {
	g := newTestGenerator(t)

	once := g.Generate([]string{"shop"}, generator.Options{MaxResults: largeMax})
	twice := g.Generate([]string{"Shop!", "shop", "SHOP"}, generator.Options{MaxResults: largeMax})

	if !slices.Equal(once, twice) {
		t.Fatalf("duplicate keywords changed output: %d vs %d candidates", len(once), len(twice))
	}
}

func TestGenerate_CompoundPairsBothOrders(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"cat", "app"}, generator.Options{
		TLDs:       []string{".com"},
		MaxResults: largeMax,
	})

	if !slices.Contains(got, "catapp.com") {
		t.Fatal("expected compound candidate catapp.com")
	}
	if !slices.Contains(got, "appcat.com") {
		t.Fatal("expected compound candidate appcat.com")
	}
}

func TestGenerate_VibeActsAsKeyword(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"pet"}, generator.Options{
		Vibe:       "Fun!",
		TLDs:       []string{".com"},
		MaxResults: largeMax,
	})

	if !slices.Contains(got, "fun.com") {
		t.Fatal("expected vibe-derived candidate fun.com")
	}
	if !slices.Contains(got, "petfun.com") {
		t.Fatal("expected compound candidate petfun.com")
	}
}

func TestGenerate_EmptyAfterNormalization(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"!!!", "  ", "--"}, generator.Options{})
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestGenerate_RespectsMaxResults(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"pet", "shop"}, generator.Options{MaxResults: 5})
	if len(got) != 5 {
		t.Fatalf("expected exactly 5 candidates, got %d", len(got))
	}
}

func TestGenerate_DefaultCap(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"pet", "shop", "store"}, generator.Options{})
	if len(got) != generator.DefaultMaxResults {
		t.Fatalf("expected %d candidates, got %d", generator.DefaultMaxResults, len(got))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := newTestGenerator(t)

	opts := generator.Options{Vibe: "techy", MaxResults: largeMax}
	first := g.Generate([]string{"data", "pipe"}, opts)
	second := g.Generate([]string{"data", "pipe"}, opts)

	if !slices.Equal(first, second) {
		t.Fatal("expected identical output for identical input")
	}
}

func TestGenerate_NoDuplicateCandidates(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"go", "use"}, generator.Options{MaxResults: largeMax})

	seen := make(map[string]struct{}, len(got))
	for _, candidate := range got {
		if _, dup := seen[candidate]; dup {
			t.Fatalf("duplicate candidate %q", candidate)
		}
		seen[candidate] = struct{}{}
	}
}

func TestGenerate_CustomWordLibraries(t *testing.T) {
	g := generator.New(generator.Config{
		Prefixes: []string{"neo"},
		Suffixes: []string{"verse"},
	})

	got := g.Generate([]string{"pet"}, generator.Options{
		TLDs:       []string{".io"},
		MaxResults: largeMax,
	})

	want := []string{"pet.io", "neopet.io", "petverse.io"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGenerate_AllCandidatesUseActiveTLDs(t *testing.T) {
	g := newTestGenerator(t)

	got := g.Generate([]string{"widget"}, generator.Options{
		TLDs:       []string{".dev"},
		MaxResults: largeMax,
	})

	for _, candidate := range got {
		if !strings.HasSuffix(candidate, ".dev") {
			t.Fatalf("candidate %q does not use the supplied TLD", candidate)
		}
	}
}
