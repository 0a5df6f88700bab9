package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"

	"bajzel/internal/source"
)

// Bag collects diagnostics of one run up to a fixed limit.
// Reports past the limit are dropped silently; the driver stops early
// on error-level input, so the limit only bounds pathological files.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag returns a bag holding at most limit diagnostics.
// A non-positive or oversized limit means math.MaxUint16.
func NewBag(limit int) *Bag {
	capped, err := safecast.Conv[uint16](limit)
	if err != nil || capped == 0 {
		capped = math.MaxUint16
	}
	return &Bag{limit: int(capped)}
}

// Add stores d unless the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool   { return b.any(SevError) }
func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) any(atLeast Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity >= atLeast
	})
}

// Merge appends everything from other, raising the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.limit = max(b.limit, len(b.items))
}

// Sort orders by position, then by descending severity, then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

type bagKey struct {
	code Code
	span source.Span
}

// Dedup keeps the first diagnostic for each code and primary span.
func (b *Bag) Dedup() {
	seen := make(map[bagKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := bagKey{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
