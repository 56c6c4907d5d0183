package registrar

import (
	"context"
	"regexp"
	"strings"
)

// Mock is the synthetic fallback registrar. It answers availability lookups
// deterministically with no network access: the same domain always gets the
// same verdict, across runs and processes. It serves two roles: the adapter
// of record when no registrar credentials are configured, and the fallback
// target when the live registrar is persistently failing.
type Mock struct{}

// NewMock creates the synthetic fallback adapter.
func NewMock() *Mock {
	return &Mock{}
}

// Name identifies the adapter in logs and metrics.
func (m *Mock) Name() string {
	return "mock"
}

// Synthetic pricing bounds for premium verdicts.
const (
	mockPriceFloor = 500
	mockPriceSpan  = 9500 // prices fall in [500, 9999]
)

// availabilityCutoff: hash mod 100 must exceed this for an available verdict.
const availabilityCutoff = 30

// Label-length heuristics for the taken/premium classification.
const (
	takenLabelLen     = 4
	takenComLabelLen  = 8
	premiumLabelLen   = 3
	premiumExactLen   = 4
	allLettersPattern = `^[a-z]+$`
)

// commonPrefixRe matches hype prefixes that make short names likely taken.
var commonPrefixRe = regexp.MustCompile(`^(get|my|the|go)[a-z]`)

var allLettersRe = regexp.MustCompile(allLettersPattern)

// Check produces a deterministic synthetic verdict for one domain.
// The context is accepted for interface symmetry; no blocking occurs.
func (m *Mock) Check(_ context.Context, domain string) (Availability, error) {
	label, tld := splitLabel(domain)
	hash := charSum(domain)

	if likelyTaken(label, tld) {
		return Availability{Available: false}, nil
	}
	if hash%100 <= availabilityCutoff {
		return Availability{Available: false}, nil
	}

	result := Availability{Available: true}
	if likelyPremium(label) {
		result.Price = float64(mockPriceFloor + hash%mockPriceSpan)
		result.HasPrice = true
	}

	return result, nil
}

// splitLabel separates the registrable label from the final TLD suffix.
func splitLabel(domain string) (label, tld string) {
	idx := strings.LastIndex(domain, ".")
	if idx < 0 {
		return domain, ""
	}
	return domain[:idx], domain[idx:]
}

// charSum derives a stable numeric hash from the domain string. It only
// needs to be reproducible, not strong.
func charSum(domain string) int {
	sum := 0
	for _, r := range domain {
		sum += int(r)
	}
	return sum
}

// likelyTaken flags names short or generic enough that they are almost
// certainly registered already.
func likelyTaken(label, tld string) bool {
	if len(label) <= takenLabelLen {
		return true
	}
	if tld == ".com" && len(label) <= takenComLabelLen {
		return true
	}
	return commonPrefixRe.MatchString(label)
}

// likelyPremium flags very short labels that registrars price above the
// standard rate.
func likelyPremium(label string) bool {
	if len(label) <= premiumLabelLen {
		return true
	}
	return len(label) == premiumExactLen && allLettersRe.MatchString(label)
}
