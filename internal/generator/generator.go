// Package generator produces candidate domain names from project keywords.
// Generation is pure and deterministic: the same keywords and options always
// yield the same candidates in the same order.
package generator

import "strings"

// DefaultMaxResults caps the candidate list when the caller does not.
const DefaultMaxResults = 20

// DefaultTLDs is the fixed TLD allow-list used when none is supplied.
var DefaultTLDs = []string{".com", ".io", ".co", ".dev", ".app", ".ai"}

// Config carries the word libraries used to expand keywords. Injecting them
// lets tests supply alternate dictionaries.
type Config struct {
	Prefixes []string
	Suffixes []string
}

// DefaultConfig returns the standard prefix/suffix libraries.
func DefaultConfig() Config {
	return Config{
		Prefixes: []string{
			"get", "my", "the", "go", "try", "use",
			"hey", "on", "up", "pro", "super", "meta",
		},
		Suffixes: []string{
			"ly", "ify", "hub", "lab", "base",
			"kit", "app", "hq", "zone", "spot",
		},
	}
}

// Options controls a single generation request.
type Options struct {
	// Vibe is a free-form style hint. It participates as an extra keyword
	// when it normalizes to something usable.
	Vibe string
	// TLDs overrides the default TLD set. Entries are used verbatim; no
	// normalization is applied to caller-supplied TLDs.
	TLDs []string
	// MaxResults truncates the candidate list. Zero means DefaultMaxResults.
	MaxResults int
}

// Generator expands keywords into candidate domains.
type Generator struct {
	cfg Config
}

// New creates a Generator with the given word libraries.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate produces a de-duplicated, insertion-ordered list of candidate
// domains. Emission order per keyword: the bare keyword, prefixed forms,
// suffixed forms; then compound pairs of distinct keywords, each crossed
// with the active TLD set. Zero usable keywords yields an empty list.
func (g *Generator) Generate(keywords []string, opts Options) []string {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	tlds := opts.TLDs
	if len(tlds) == 0 {
		tlds = DefaultTLDs
	}

	words := normalizeKeywords(keywords)
	if vibe := normalizeKeyword(opts.Vibe); vibe != "" {
		words = appendUnique(words, vibe)
	}
	if len(words) == 0 {
		return []string{}
	}

	set := newOrderedSet(maxResults)

	for _, word := range words {
		for _, tld := range tlds {
			if set.add(word + tld) {
				return set.items
			}
		}
		for _, prefix := range g.cfg.Prefixes {
			for _, tld := range tlds {
				if set.add(prefix + word + tld) {
					return set.items
				}
			}
		}
		for _, suffix := range g.cfg.Suffixes {
			for _, tld := range tlds {
				if set.add(word + suffix + tld) {
					return set.items
				}
			}
		}
	}

	// Compound strategy: both orders of every distinct keyword pair.
	for _, first := range words {
		for _, second := range words {
			if first == second {
				continue
			}
			for _, tld := range tlds {
				if set.add(first + second + tld) {
					return set.items
				}
			}
		}
	}

	return set.items
}

// normalizeKeywords cleans every keyword and drops the ones that normalize
// to nothing. First-appearance order is preserved.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if cleaned := normalizeKeyword(kw); cleaned != "" {
			out = appendUnique(out, cleaned)
		}
	}
	return out
}

// normalizeKeyword lowercases a keyword and strips everything outside [a-z0-9].
func normalizeKeyword(kw string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(kw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func appendUnique(words []string, word string) []string {
	for _, w := range words {
		if w == word {
			return words
		}
	}
	return append(words, word)
}

// orderedSet suppresses duplicates while preserving insertion order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
	limit int
}

func newOrderedSet(limit int) *orderedSet {
	return &orderedSet{
		items: make([]string, 0, limit),
		seen:  make(map[string]struct{}, limit),
		limit: limit,
	}
}

// add inserts a candidate unless it is a duplicate. It returns true once the
// set has reached its limit, signalling the caller to stop emitting.
func (s *orderedSet) add(candidate string) bool {
	if _, dup := s.seen[candidate]; !dup {
		s.seen[candidate] = struct{}{}
		s.items = append(s.items, candidate)
	}
	return len(s.items) >= s.limit
}
