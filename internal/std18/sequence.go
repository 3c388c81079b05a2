package std18

// SequenceTracker numbers the lines of one parse session. A tracker must
// not be shared between files.
type SequenceTracker struct {
	line  int
	index int
}

// NewSequenceTracker returns a tracker whose first line and first business
// record are both numbered 1.
func NewSequenceTracker() *SequenceTracker {
	return &SequenceTracker{}
}

// NextLine advances and returns the absolute line position.
func (s *SequenceTracker) NextLine() int {
	s.line++
	return s.line
}

// NextIndex advances and returns the business record ordinal.
func (s *SequenceTracker) NextIndex() int {
	s.index++
	return s.index
}

// Lines returns how many lines have been numbered so far.
func (s *SequenceTracker) Lines() int { return s.line }

// Indexes returns how many business records have been numbered so far.
func (s *SequenceTracker) Indexes() int { return s.index }
