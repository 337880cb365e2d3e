// Package maze generates perfect rectangular grid mazes.
//
// A maze is a spanning tree over the cells of a width×height grid: every cell
// is reachable from every other cell along exactly one route. Generation is a
// randomized Kruskal pass over the grid's adjacent cell pairs:
//
//  1. Every adjacent pair becomes a candidate edge with a random weight in
//     [0, MaxWeight). The list is sorted ascending by weight; equal weights
//     keep discovery order, so a fixed seed always yields the same maze.
//  2. Border pre-pass: edges whose two cells lie on the same outer side of
//     the grid are taken first, regardless of weight, so the outer ring of
//     the maze is one connected corridor.
//  3. The remaining edges are taken in weight order whenever they join two
//     components of a [DisjointSet], until the tree holds width·height−1
//     edges.
//
// Tree edges are passages; every other adjacent pair is a wall. The passage
// flags on each [Cell] are derived from the tree and are always symmetric:
// an open right side on a cell implies an open left side on its right
// neighbour.
//
// # Coordinates
//
// Cells are addressed by [Coord]{Col, Row}, 0-indexed from the top-left
// corner. The grid stores cells in one row-major slice and computes
// neighbours from coordinates; no cell references another.
//
// # Usage
//
//	m, err := maze.Generate(20, 15, 42)
//	if err != nil {
//	    return err // width or height < 1
//	}
//	if m.Open(maze.Coord{}, maze.Right) {
//	    // the top-left cell connects to its right neighbour
//	}
//
// A defect that breaks the spanning-tree invariants panics with an
// INVARIANT_VIOLATION error from pkg/errors rather than returning a
// half-built maze.
package maze
