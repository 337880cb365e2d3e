package search

// frontier holds cell indices awaiting expansion.
type frontier interface {
	push(i int)
	pop() int
	len() int
	// items returns the pending cells, next to be popped first.
	items() []int
}

func newFrontier(m Mode) frontier {
	if m == DepthFirst {
		return &stack{}
	}
	return &queue{}
}

type stack struct{ s []int }

func (f *stack) push(i int) { f.s = append(f.s, i) }

func (f *stack) pop() int {
	i := f.s[len(f.s)-1]
	f.s = f.s[:len(f.s)-1]
	return i
}

func (f *stack) len() int { return len(f.s) }

func (f *stack) items() []int {
	out := make([]int, len(f.s))
	for i, v := range f.s {
		out[len(f.s)-1-i] = v
	}
	return out
}

// queue is a slice with a moving head. The consumed prefix is dropped once
// it makes up half of the backing array.
type queue struct {
	q    []int
	head int
}

func (f *queue) push(i int) { f.q = append(f.q, i) }

func (f *queue) pop() int {
	i := f.q[f.head]
	f.head++
	if f.head > 32 && f.head*2 >= len(f.q) {
		f.q = append(f.q[:0], f.q[f.head:]...)
		f.head = 0
	}
	return i
}

func (f *queue) len() int { return len(f.q) - f.head }

func (f *queue) items() []int {
	out := make([]int, f.len())
	copy(out, f.q[f.head:])
	return out
}
