package calculator

import (
	"strconv"

	"github.com/edwingeng/deque"
)

// DefaultHistoryLimit bounds a History constructed with a non-positive
// limit.
const DefaultHistoryLimit = 100

// HistoryEntry is one recorded calculation.
type HistoryEntry struct {
	// Input is the expression text as the caller gave it.
	Input string
	// Result is the computed value. It is meaningless when Err is set.
	Result float64
	// Err is the calculation error, nil on success.
	Err error
}

// History is a bounded log of calculations. It remembers the most recent
// successful result for ans substitution; failures never disturb it.
// History is not safe for concurrent use.
type History struct {
	entries deque.Deque
	limit   int
	last    float64
	hasLast bool
}

// NewHistory creates a History keeping at most limit entries, evicting
// the oldest first. A limit below one means DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{entries: deque.NewDeque(), limit: limit}
}

// Add records a calculation. A successful result becomes the new last
// result.
func (h *History) Add(input string, result float64, err error) {
	if err == nil {
		h.last = result
		h.hasLast = true
	}
	h.entries.PushBack(HistoryEntry{Input: input, Result: result, Err: err})
	for h.entries.Len() > h.limit {
		h.entries.PopFront()
	}
}

// Last returns the most recent successful result.
func (h *History) Last() (float64, bool) {
	return h.last, h.hasLast
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return h.entries.Len()
}

// Entries returns the recorded entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, 0, h.entries.Len())
	h.entries.Range(func(i int, v deque.Elem) bool {
		out = append(out, v.(HistoryEntry))
		return true
	})
	return out
}

// Clear drops every entry. The last result survives, as it survives
// eviction; only a new successful calculation replaces it.
func (h *History) Clear() {
	h.entries = deque.NewDeque()
}

// Resolve substitutes the last result for every "ans" token, or 0 when
// no calculation has succeeded yet. A nil sequence stays nil; the input
// slice is never modified.
func (h *History) Resolve(tokens []string) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if tok == "ans" {
			out[i] = strconv.FormatFloat(h.last, 'g', -1, 64)
			continue
		}
		out[i] = tok
	}
	return out
}
