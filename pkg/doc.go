// Package pkg provides the core libraries for mazewalk.
//
// # Overview
//
// Mazewalk builds perfect mazes with randomized Kruskal and lets breadth-first
// and depth-first search walk them one step at a time. The pkg directory is
// organized into three areas:
//
//  1. Domain: [maze], [search], [game]
//  2. Output and orchestration: [export], [pipeline], [server]
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	(width, height, seed)
//	         ↓
//	    [maze] package (candidate edges, border pre-pass, Kruskal, passages)
//	         ↓
//	    [search] package (stepwise BFS/DFS, path reconstruction)
//	         ↓
//	    [export] package (text, JSON, DOT, SVG/PNG/PDF)
//
// [game] ties a maze, a player and a search together behind the commands an
// interactive front end sends; the terminal game and [server] both drive it.
//
// # Quick Start
//
//	m, _ := maze.Generate(20, 15, 7)
//	eng, _ := search.NewEngine(m, m.Start(), m.Goal())
//	eng.Start(search.BreadthFirst)
//	eng.Run(0)
//	fmt.Println(eng.Path())
//
//	svg, _ := export.Render(ctx, export.Scene{Maze: m, Search: eng}, export.FormatSVG, export.DOTOptions{})
//
// # Main Packages
//
// [maze] - Grid geometry, disjoint-set forest, randomized Kruskal with the
// border pre-pass and passage derivation. Generation is deterministic in
// (width, height, seed).
//
// [search] - The frontier engine: a queue for BFS, a stack for DFS, one pop
// per Advance, with visited and expanded marks for drawing.
//
// [game] - Player movement, trail, win detection and the search commands.
//
// [export] - Text, JSON, DOT and Graphviz renderings of a maze with its
// search overlay.
//
// [pipeline] - Generate, solve and render with caching and hooks, used by
// the generate, solve and render commands.
//
// [server] - HTTP sessions over [game], stepped by the client.
//
// [cache] - File, Redis and null caches for rendered artifacts.
//
// [config] - TOML file, .env and environment settings.
//
// [observability] - Hooks for generation, search, rendering, cache and HTTP
// events.
package pkg
