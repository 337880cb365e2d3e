package maze

// DisjointSet tracks a partition of the elements 0..n-1 into connected
// components. Elements are cell indices of a [Grid].
//
// It is not safe for concurrent use.
type DisjointSet struct {
	parent     []int
	components int
}

// NewDisjointSet creates n singleton components.
func NewDisjointSet(n int) *DisjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &DisjointSet{parent: parent, components: n}
}

// Find returns the root of x's component. The walk is iterative and
// compresses the path: every element visited ends up pointing directly at
// the root.
func (s *DisjointSet) Find(x int) int {
	root := x
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[x] != root {
		next := s.parent[x]
		s.parent[x] = root
		x = next
	}
	return root
}

// Union points the root of a's component at the root of b's component.
// It is a no-op when a and b are already connected.
func (s *DisjointSet) Union(a, b int) {
	ra, rb := s.Find(a), s.Find(b)
	if ra == rb {
		return
	}
	s.parent[ra] = rb
	s.components--
}

// Connected reports whether a and b share a root.
func (s *DisjointSet) Connected(a, b int) bool {
	return s.Find(a) == s.Find(b)
}

// Components returns the number of disjoint components.
func (s *DisjointSet) Components() int {
	return s.components
}

// Len returns the number of elements.
func (s *DisjointSet) Len() int {
	return len(s.parent)
}
