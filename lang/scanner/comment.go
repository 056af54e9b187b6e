package scanner

import "github.com/suru-lang/suru/lang/diag"

// lineComment scans a "//" comment to the end of the line (exclusive); the
// leading "//" has already been consumed.
func (s *Scanner) lineComment() string {
	start := s.off
	for s.cur != '\n' && s.cur != -1 {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// docBlock scans a documentation block: an opening run of openLen (>= 4)
// '=' characters, then markdown text, then a closing run of >= 4 '='
// characters. It returns the raw text of the whole block (markers
// included) and the decoded markdown body (markers excluded).
func (s *Scanner) docBlock(openLen int) (raw, body string) {
	start := s.off
	for i := 0; i < openLen; i++ {
		s.advance()
	}
	bodyStart := s.off

	for s.cur != -1 {
		if n := s.peekRunLen('='); n >= 4 {
			bodyEnd := s.off
			for i := 0; i < n; i++ {
				s.advance()
			}
			return string(s.src[start:s.off]), string(s.src[bodyStart:bodyEnd])
		}
		s.advance()
	}

	s.errorAt(diag.UnterminatedString, "documentation block not terminated")
	return string(s.src[start:s.off]), string(s.src[bodyStart:s.off])
}
