package assessment

import (
	"fmt"

	"github.com/kingrea/dass-check/internal/instrument"
)

type slot struct {
	answered bool
	value    instrument.Response
}

// AnswerSet holds one slot per instrument item. The length never changes;
// slot i belongs to item i (1-based). The zero value is a fully unanswered set.
type AnswerSet struct {
	slots [instrument.ItemCount]slot
}

// NewAnswerSet returns a set with every slot unanswered.
func NewAnswerSet() AnswerSet {
	return AnswerSet{}
}

// Set replaces the answer for a single item. Out-of-range input is rejected
// and leaves the set untouched.
func (a *AnswerSet) Set(index int, value instrument.Response) error {
	if !instrument.ValidIndex(index) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, index)
	}
	if !value.Valid() {
		return fmt.Errorf("%w: %d", ErrResponseOutOfRange, value)
	}
	a.slots[index-1] = slot{answered: true, value: value}
	return nil
}

// Get returns the answer for index and whether the slot is answered.
func (a AnswerSet) Get(index int) (instrument.Response, bool) {
	if !instrument.ValidIndex(index) {
		return 0, false
	}
	s := a.slots[index-1]
	return s.value, s.answered
}

// Len is always instrument.ItemCount.
func (a AnswerSet) Len() int {
	return len(a.slots)
}

// AnsweredCount returns how many slots hold an answer.
func (a AnswerSet) AnsweredCount() int {
	n := 0
	for _, s := range a.slots {
		if s.answered {
			n++
		}
	}
	return n
}

// IsComplete reports whether every slot is answered.
func (a AnswerSet) IsComplete() bool {
	return a.AnsweredCount() == len(a.slots)
}

// Unanswered lists the 1-based indices of open slots in order.
func (a AnswerSet) Unanswered() []int {
	var open []int
	for i, s := range a.slots {
		if !s.answered {
			open = append(open, i+1)
		}
	}
	return open
}

// Reset clears every slot.
func (a *AnswerSet) Reset() {
	a.slots = [instrument.ItemCount]slot{}
}

// Values returns the answers as plain integers in item order. It fails with
// ErrIncomplete while any slot is open.
func (a AnswerSet) Values() ([]int, error) {
	if !a.IsComplete() {
		return nil, ErrIncomplete
	}
	out := make([]int, len(a.slots))
	for i, s := range a.slots {
		out[i] = int(s.value)
	}
	return out, nil
}
