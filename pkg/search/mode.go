package search

import (
	"strings"

	"github.com/matzehuels/mazewalk/pkg/errors"
)

// Mode selects the frontier discipline.
type Mode uint8

const (
	// BreadthFirst uses a FIFO queue.
	BreadthFirst Mode = iota
	// DepthFirst uses a LIFO stack.
	DepthFirst
)

func (m Mode) String() string {
	if m == DepthFirst {
		return "dfs"
	}
	return "bfs"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode accepts "bfs", "breadth-first", "dfs", "depth-first" and their
// single-letter forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first", "breadth", "b":
		return BreadthFirst, nil
	case "dfs", "depth-first", "depth", "d", "f":
		return DepthFirst, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "unknown search mode %q (want bfs or dfs)", s)
}

// State is the lifecycle state of an [Engine].
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateFound
	StateExhausted
)

var stateNames = [...]string{"idle", "running", "found", "exhausted"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if string(b) == name {
			*s = State(i)
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown search state %q", b)
}

// Done reports whether the search has terminated.
func (s State) Done() bool { return s == StateFound || s == StateExhausted }
