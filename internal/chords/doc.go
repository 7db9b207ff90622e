// Package chords transposes chord charts.
//
// # Notes
//
// A [PitchClass] is an index into the chromatic scale starting at A. Spellings resolve through a
// fixed table that includes enharmonics (Bb, Cb, B#, E#, Fb, ...), and every pitch class has one
// canonical spelling: A, A#, B, C, C#, D, Eb, E, F, F#, G, G#.
//
// Transposing always produces the canonical spelling, so "Bb" shifted by 0 comes back as "A#".
//
// # Tabs
//
// [TransposeTab] rewrites chord names inside free-form tab text line by line. Only the root and the
// optional bass note change; quality words (maj, min, dim, aug, add, sus2, sus4, sus, m, M),
// numeric extensions and all surrounding text are copied as-is.
//
// Chords are found with a small scanner rather than a regular expression so that boundary handling
// does not depend on regex dialect. Anything that is not a chord, including words like "Cat", is left alone.
package chords
