package chords

// Transposer tracks the net offset applied to a tab during a viewing session.
//
// Each step is applied to the current text, not the original, so up and down steps accumulate
// and non-canonical spellings are normalized on the first step.
type Transposer struct {
	offset int
}

// Up shifts text one semitone up.
func (t *Transposer) Up(text string) string {
	return t.Step(text, 1)
}

// Down shifts text one semitone down.
func (t *Transposer) Down(text string) string {
	return t.Step(text, -1)
}

// Step shifts text by semitones and records it in the running offset.
func (t *Transposer) Step(text string, semitones int) string {
	t.offset += semitones
	return TransposeTab(text, semitones)
}

// Offset returns the net number of semitones applied so far, reduced to [-11, 11].
func (t *Transposer) Offset() int {
	return t.offset % 12
}

// Reset clears the running offset.
func (t *Transposer) Reset() {
	t.offset = 0
}
