package markup

// stack is a simple LIFO used for the chain of open Tokens.
type stack[T any] struct {
	v []T
}

func (s *stack[T]) push(t T) {
	s.v = append(s.v, t)
}

func (s *stack[T]) pop() (T, bool) {
	var empty T

	if len(s.v) == 0 {
		return empty, false
	}

	last := s.v[len(s.v)-1]
	s.v = s.v[:len(s.v)-1]

	return last, true
}

func (s *stack[T]) len() int {
	return len(s.v)
}

// snapshot copies the current content, so the stack can be restored after
// exits performed inside a failed attempt.
func (s *stack[T]) snapshot() []T {
	if len(s.v) == 0 {
		return nil
	}

	cp := make([]T, len(s.v))
	copy(cp, s.v)
	return cp
}

func (s *stack[T]) restore(v []T) {
	s.v = append(s.v[:0], v...)
}
