package testutil

import "time"

// ByteStream reads bytes sequentially from a byte slice.
//
// Used by fuzz tests to deterministically derive values from fuzz input.
// When the stream is exhausted, all reads return zero values. This ensures
// determinism: the same input always produces the same sequence of values.
type ByteStream struct {
	bytes []byte
	pos   int
}

// NewByteStream creates a stream over the given bytes.
func NewByteStream(b []byte) *ByteStream {
	return &ByteStream{bytes: b}
}

// HasMore reports whether unread bytes remain.
func (s *ByteStream) HasMore() bool {
	return s.pos < len(s.bytes)
}

// NextByte returns the next byte, or 0 if exhausted.
func (s *ByteStream) NextByte() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

// NextInt returns a non-negative int derived from the next byte.
func (s *ByteStream) NextInt(maxVal int) int {
	if maxVal <= 0 {
		return 0
	}

	return int(s.NextByte()) % maxVal
}

// NextPick returns one element of choices, or the zero value if empty.
func NextPick[T any](s *ByteStream, choices []T) T {
	var zero T
	if len(choices) == 0 {
		return zero
	}

	return choices[s.NextInt(len(choices))]
}

// NextSeconds returns a duration of 0 to maxSeconds-1 whole seconds.
func (s *ByteStream) NextSeconds(maxSeconds int) time.Duration {
	// Two bytes so spans above 255s are reachable.
	hi := int(s.NextByte())
	lo := int(s.NextByte())

	if maxSeconds <= 0 {
		return 0
	}

	return time.Duration((hi<<8|lo)%maxSeconds) * time.Second
}
