// Package search implements a stepwise breadth-first or depth-first search
// over a maze.
//
// An [Engine] does not run to completion on its own. Each call to
// [Engine.Advance] pops exactly one cell from the frontier, so a caller can
// animate the search by advancing once per tick:
//
//	eng, _ := search.NewEngine(m, m.Start(), m.Goal())
//	eng.Start(search.BreadthFirst)
//	for eng.Advance() == search.StateRunning {
//		draw(eng)
//	}
//
// Neighbours are expanded in the fixed order down, up, left, right, and a
// cell is marked visited as soon as it is pushed. The frontier therefore
// never holds a cell twice and the predecessor of a cell never changes once
// set. When the goal is popped the path is rebuilt by following predecessors
// back to the start; [Engine.Path] returns it in start-to-goal order.
//
// Breadth-first search yields a shortest path. Depth-first search yields
// some valid path. On a perfect maze the two coincide, since there is only
// one path between any two cells.
//
// An Engine is not safe for concurrent use.
package search
