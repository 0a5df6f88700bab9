package parser

import (
	"bajzel/internal/token"
)

// fn is a parse function: on success it returns the value and the advanced
// stream, on failure ok is false and the input stream must be reused.
type fn[T any] func(Stream) (T, Stream, bool)

// tag matches a single token of kind k.
func tag(k token.Kind) fn[token.Token] {
	return func(s Stream) (token.Token, Stream, bool) {
		tok := s.Peek()
		if tok.Kind != k {
			return token.Token{}, s, false
		}
		return tok, s.Advance(), true
	}
}

// alt tries each alternative in order and returns the first match.
func alt[T any](ps ...fn[T]) fn[T] {
	return func(s Stream) (T, Stream, bool) {
		for _, p := range ps {
			if v, rest, ok := p(s); ok {
				return v, rest, true
			}
		}
		var zero T
		return zero, s, false
	}
}

// opt never fails; found reports whether p matched.
func opt[T any](p fn[T]) fn[option[T]] {
	return func(s Stream) (option[T], Stream, bool) {
		if v, rest, ok := p(s); ok {
			return option[T]{val: v, found: true}, rest, true
		}
		return option[T]{}, s, true
	}
}

type option[T any] struct {
	val   T
	found bool
}

// many0 applies p until it fails or stops consuming input.
func many0[T any](p fn[T]) fn[[]T] {
	return func(s Stream) ([]T, Stream, bool) {
		var out []T
		for {
			v, rest, ok := p(s)
			if !ok || rest.pos == s.pos {
				return out, s, true
			}
			out = append(out, v)
			s = rest
		}
	}
}

// many1 is many0 that requires at least one match.
func many1[T any](p fn[T]) fn[[]T] {
	return func(s Stream) ([]T, Stream, bool) {
		out, rest, _ := many0(p)(s)
		if len(out) == 0 {
			return nil, s, false
		}
		return out, rest, true
	}
}

// preceded matches first then p, keeping p's value.
func preceded[A, T any](first fn[A], p fn[T]) fn[T] {
	return func(s Stream) (T, Stream, bool) {
		var zero T
		_, rest, ok := first(s)
		if !ok {
			return zero, s, false
		}
		v, rest, ok := p(rest)
		if !ok {
			return zero, s, false
		}
		return v, rest, true
	}
}

// mapTo converts a successful value.
func mapTo[A, T any](p fn[A], f func(A) T) fn[T] {
	return func(s Stream) (T, Stream, bool) {
		v, rest, ok := p(s)
		if !ok {
			var zero T
			return zero, s, false
		}
		return f(v), rest, true
	}
}
