package callsign

// SequencerCycle is the number of values a Sequencer produces before it
// returns to AAA.
const SequencerCycle = 26 * 26 * 26

// Sequencer cycles through three letters in alphabetical order:
// AAA, AAB, ... ZZZ, then AAA again.
type Sequencer struct {
	letters [3]byte
}

// NewSequencer creates a Sequencer that starts at AAA.
func NewSequencer() *Sequencer {
	return &Sequencer{letters: [3]byte{'A', 'A', 'A'}}
}

// Next returns the current letters and advances the sequencer.
func (s *Sequencer) Next() [3]byte {
	res := s.letters
	for i := 2; i >= 0; i-- {
		if s.letters[i] < 'Z' {
			s.letters[i]++
			break
		}
		s.letters[i] = 'A'
	}
	return res
}

// Peek returns the letters the next call to Next will return.
func (s *Sequencer) Peek() string {
	return string(s.letters[:])
}
