package framegraph

import "fmt"

// GraphStats is a snapshot of the graph's occupancy and, after Compile,
// the culling outcome.
type GraphStats struct {
	// Passes is the number of declared passes.
	Passes int

	// Textures and Buffers count the resource records, including the
	// version clones made by write-renaming.
	Textures int
	Buffers  int

	// CulledPasses is the number of passes Compile removed from
	// execution. Zero before the first Compile.
	CulledPasses int

	// CulledResources is the number of resource records whose reference
	// count drained to zero. Zero before the first Compile.
	CulledResources int

	// Compiled reports whether Compile has run on the current build.
	Compiled bool
}

// String returns a human-readable summary.
func (s GraphStats) String() string {
	return fmt.Sprintf("Graph[%d passes (%d culled), %d textures, %d buffers, %d culled resources]",
		s.Passes, s.CulledPasses, s.Textures, s.Buffers, s.CulledResources)
}

// Stats returns a snapshot of the graph.
func (g *Graph) Stats() GraphStats {
	return GraphStats{
		Passes:          len(g.passes),
		Textures:        len(g.textures),
		Buffers:         len(g.buffers),
		CulledPasses:    g.culled.passes,
		CulledResources: g.culled.resources,
		Compiled:        g.compiled,
	}
}
