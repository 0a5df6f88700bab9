package parser

import (
	"bajzel/internal/token"
)

// Stream is an immutable cursor over a token slice. Every parse function
// takes a Stream by value and returns the advanced copy on success, so a
// failed alternative simply keeps using its own input.
type Stream struct {
	toks []token.Token
	pos  int
}

// NewStream wraps toks. A missing trailing EOF is synthesized.
func NewStream(toks []token.Token) Stream {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		eof := token.Token{Kind: token.EOF}
		if len(toks) > 0 {
			end := toks[len(toks)-1].Span
			end.Start = end.End
			eof.Span = end
		}
		toks = append(toks[:len(toks):len(toks)], eof)
	}
	return Stream{toks: toks}
}

// Peek returns the current token; past the end it keeps returning EOF.
func (s Stream) Peek() token.Token {
	if s.pos >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos]
}

// PeekNext returns the token after the current one.
func (s Stream) PeekNext() token.Token {
	return s.Advance().Peek()
}

// Advance returns the stream moved one token forward.
func (s Stream) Advance() Stream {
	if s.pos < len(s.toks) {
		s.pos++
	}
	return s
}

// Pos is the index of the current token.
func (s Stream) Pos() int { return s.pos }

// Remaining returns the unread tokens, including the final EOF.
func (s Stream) Remaining() []token.Token {
	if s.pos >= len(s.toks) {
		return nil
	}
	return s.toks[s.pos:]
}
