package chords

// PitchClass is a note's position in the chromatic scale starting at A (A = 0, G# = 11).
type PitchClass int

// spellings holds the canonical display spelling for each [PitchClass].
//
// Every black key is spelled sharp except pitch class 6, which is spelled Eb.
var spellings = [12]string{"A", "A#", "B", "C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#"}

// pitchClasses maps every recognized spelling, enharmonics included, to its [PitchClass].
var pitchClasses = map[string]PitchClass{
	"A": 0, "A#": 1, "Bb": 1,
	"B": 2, "Cb": 2,
	"C": 3, "B#": 3,
	"C#": 4, "Db": 4,
	"D":  5,
	"D#": 6, "Eb": 6,
	"E": 7, "Fb": 7,
	"F": 8, "E#": 8,
	"F#": 9, "Gb": 9,
	"G":  10,
	"G#": 11, "Ab": 11,
}

// ResolvePitchClass looks up the [PitchClass] for a note spelling such as "C", "F#" or "Bb".
//
// The second return value is false when the spelling is not recognized.
func ResolvePitchClass(spelling string) (PitchClass, bool) {
	pc, ok := pitchClasses[spelling]
	return pc, ok
}

// Normalize reduces p into [0, 11].
func (p PitchClass) Normalize() PitchClass {
	return PitchClass((int(p)%12 + 12) % 12)
}

// String returns the canonical spelling of p.
func (p PitchClass) String() string {
	return spellings[p.Normalize()]
}

// Spell returns the canonical spelling for a pitch class.
func Spell(pc PitchClass) string {
	return pc.String()
}

// Shift moves p by the given number of semitones, wrapping around the octave.
func (p PitchClass) Shift(semitones int) PitchClass {
	return PitchClass(int(p) + semitones%12).Normalize()
}

// TransposeNote shifts a single note spelling by semitones and returns the canonical spelling of the result.
//
// Unrecognized spellings are returned unchanged.
func TransposeNote(spelling string, semitones int) string {
	pc, ok := ResolvePitchClass(spelling)
	if !ok {
		return spelling
	}
	return pc.Shift(semitones).String()
}
