// SPDX-License-Identifier: MIT
package plan

// History is the set of fingerprints a chain has accepted, in acceptance order.
// It is owned by one chain and is not safe for concurrent mutation.
type History struct {
	steps map[Fingerprint]int
	order []Fingerprint
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{steps: make(map[Fingerprint]int)}
}

// Add records f as accepted at step. It returns false, leaving the history
// unchanged, if f was already present.
func (h *History) Add(f Fingerprint, step int) bool {
	if _, dup := h.steps[f]; dup {
		return false
	}
	h.steps[f] = step
	h.order = append(h.order, f)

	return true
}

// Contains reports whether f was already accepted.
func (h *History) Contains(f Fingerprint) bool {
	_, ok := h.steps[f]

	return ok
}

// StepOf returns the step at which f was accepted.
func (h *History) StepOf(f Fingerprint) (int, bool) {
	s, ok := h.steps[f]

	return s, ok
}

// Len returns the number of accepted fingerprints.
func (h *History) Len() int { return len(h.order) }

// Fingerprints returns a copy of the accepted fingerprints in order.
func (h *History) Fingerprints() []Fingerprint {
	return append([]Fingerprint(nil), h.order...)
}
