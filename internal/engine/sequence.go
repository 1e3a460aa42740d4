package engine

// StepSequence produces successive states of a system, at most Limit of
// them. It deep-copies the source system once at construction and owns that
// copy exclusively: every Next call mutates it in place and returns the same
// pointer, a borrowed view valid only until the following Next. Holders of
// earlier returns observe later mutations, so a sequence has exactly one
// logical consumer. It is forward-only and not restartable; replaying means
// building a new sequence from the original system.
type StepSequence struct {
	sys   *System
	index int
}

// NewSequence copies sys and returns a sequence over the copy. The original
// system is never touched again.
func NewSequence(sys *System) *StepSequence {
	return &StepSequence{sys: sys.Clone()}
}

// Next advances the owned system by one step and returns it. After Limit
// advances it returns ErrEndOfSequence; a geometry failure is returned as-is
// with the owned system left in its pre-step state.
func (q *StepSequence) Next() (*System, error) {
	if q.index >= q.sys.Limit {
		return nil, ErrEndOfSequence
	}
	if err := q.sys.Step(); err != nil {
		return nil, err
	}
	q.index++
	return q.sys, nil
}

// Index reports the number of advances performed so far.
func (q *StepSequence) Index() int {
	return q.index
}

// Len reports the configured number of advances.
func (q *StepSequence) Len() int {
	return q.sys.Limit
}

// Exhausted reports whether Next has no more states to produce.
func (q *StepSequence) Exhausted() bool {
	return q.index >= q.sys.Limit
}
