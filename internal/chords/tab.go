package chords

import "strings"

// qualities lists chord quality words in the order they are tried.
var qualities = []string{"maj", "min", "dim", "aug", "add", "sus2", "sus4", "sus", "m", "M"}

// Token is a chord recognized inside a line of tab text.
//
// Start and End are byte offsets into the line, End exclusive.
type Token struct {
	Start     int
	End       int
	Root      string
	Quality   string
	Extension string
	Bass      string // without the leading slash
}

// String reassembles the chord as written.
func (t Token) String() string {
	s := t.Root + t.Quality + t.Extension
	if t.Bass != "" {
		s += "/" + t.Bass
	}
	return s
}

// Transpose returns the chord text with root and bass shifted by semitones.
func (t Token) Transpose(semitones int) string {
	s := TransposeNote(t.Root, semitones) + t.Quality + t.Extension
	if t.Bass != "" {
		s += "/" + TransposeNote(t.Bass, semitones)
	}
	return s
}

// TransposeTab shifts every chord in text by semitones.
//
// Lines are processed independently and everything outside a chord is copied unchanged.
func TransposeTab(text string, semitones int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = TransposeLine(line, semitones)
	}
	return strings.Join(lines, "\n")
}

// TransposeLine shifts every chord in a single line by semitones.
func TransposeLine(line string, semitones int) string {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + len(tokens))

	last := 0
	for _, tok := range tokens {
		b.WriteString(line[last:tok.Start])
		b.WriteString(tok.Transpose(semitones))
		last = tok.End
	}
	b.WriteString(line[last:])

	return b.String()
}

// Tokenize scans a line left to right and returns the chords found in it.
//
// A chord starts at a word boundary with a root A-G and an optional # or b, followed by an optional
// quality, an optional digit run and an optional slash bass note. It must not be followed by a letter.
// Longer readings are preferred; when the longest reading runs into a letter, shorter readings of the
// same chord are tried before giving up, so "Cm7b5" yields "Cm" and "Cat" yields nothing.
func Tokenize(line string) []Token {
	var tokens []Token
	for i := 0; i < len(line); {
		if isNoteLetter(line[i]) && (i == 0 || !isWordByte(line[i-1])) {
			if tok, ok := matchAt(line, i); ok {
				tokens = append(tokens, tok)
				i = tok.End
				continue
			}
		}
		i++
	}
	return tokens
}

// matchAt tries every reading of a chord starting at pos, longest first.
func matchAt(line string, pos int) (Token, bool) {
	for _, rootLen := range noteLengths(line, pos) {
		afterRoot := pos + rootLen
		for _, quality := range qualityCandidates(line, afterRoot) {
			afterQuality := afterRoot + len(quality)
			digits := digitRun(line, afterQuality)
			for d := digits; d >= 0; d-- {
				afterDigits := afterQuality + d
				for _, bassLen := range bassLengths(line, afterDigits) {
					end := afterDigits + bassLen
					if end < len(line) && isLetter(line[end]) {
						continue
					}
					tok := Token{
						Start:     pos,
						End:       end,
						Root:      line[pos:afterRoot],
						Quality:   quality,
						Extension: line[afterQuality:afterDigits],
					}
					if bassLen > 0 {
						tok.Bass = line[afterDigits+1 : end]
					}
					return tok, true
				}
			}
		}
	}
	return Token{}, false
}

// noteLengths returns the possible lengths of a note spelling at pos, longest first.
func noteLengths(line string, pos int) []int {
	if pos >= len(line) || !isNoteLetter(line[pos]) {
		return nil
	}
	if pos+1 < len(line) && (line[pos+1] == '#' || line[pos+1] == 'b') {
		return []int{2, 1}
	}
	return []int{1}
}

// qualityCandidates returns the quality words present at pos in try order, ending with the empty quality.
func qualityCandidates(line string, pos int) []string {
	rest := line[pos:]
	candidates := make([]string, 0, 3)
	for _, q := range qualities {
		if strings.HasPrefix(rest, q) {
			candidates = append(candidates, q)
		}
	}
	return append(candidates, "")
}

func digitRun(line string, pos int) int {
	n := 0
	for pos+n < len(line) && line[pos+n] >= '0' && line[pos+n] <= '9' {
		n++
	}
	return n
}

// bassLengths returns the possible lengths of a "/note" suffix at pos, longest first, ending with 0.
func bassLengths(line string, pos int) []int {
	if pos < len(line) && line[pos] == '/' {
		lengths := noteLengths(line, pos+1)
		out := make([]int, 0, len(lengths)+1)
		for _, l := range lengths {
			out = append(out, l+1)
		}
		return append(out, 0)
	}
	return []int{0}
}

func isNoteLetter(c byte) bool { return c >= 'A' && c <= 'G' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isWordByte(c byte) bool { return isLetter(c) || (c >= '0' && c <= '9') || c == '_' }
