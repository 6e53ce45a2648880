// Package mitonet is a stochastic Gillespie simulator of a mitochondrial
// network as it undergoes fission and fusion.
//
// A network is a segmented multigraph: a Structure holds a 1-based array
// of Segments, each a maximal linear run of Edges with up to two
// branching ends. Fission and fusion reactions rewrite this graph in
// place; a classify.Fusion11/Fusion12/Fusion1L/FissionPropensity pass
// enumerates every legal rewrite site after each change, and a Gillespie
// selector (package reaction) samples among them weighted by rate.
//
// Everything is organized under domain subpackages:
//
//	edge/      — Edge, the atomic unit of network length
//	segment/   — Segment, a linear run of edges with two branching ends
//	structure/ — Structure, the 1-based segment array and cluster tables
//	transform/ — CoreTransformer, the neighbour-list rewrite primitives
//	fission/   — Fiss2/Fiss3, the fission rewrites
//	fusion/    — Fuse11/Fuse12/Fuse1L, the fusion rewrites
//	classify/  — candidate enumeration and propensity accounting
//	reaction/  — the Gillespie reaction set and selector
//	rng/       — the uniform-float source and seed table
//	simconfig/ — the run configuration file
//	snapshot/  — the binary network snapshot stream
//	driver/    — the time-bounded simulation loop
//	cmd/mitonet/ — the command-line driver
package mitonet
