package topology

// unpack rewrites a build-time geometry's candidate-index references into
// the final, output-facing Geometry, resolving each candidate index
// through b.arcRefs (the dedup stage's output).
func (b *builder) unpack(g *buildGeometry) *Geometry {
	out := &Geometry{Type: g.Type, ID: g.ID, Properties: g.Properties}

	switch g.Type {
	case TypePoint:
		out.Point = g.Point

	case TypeMultiPoint:
		out.MultiPoint = g.MultiPoint

	case TypeLineString:
		out.LineArcs = b.arcRefs[g.Line]

	case TypeMultiLineString, TypePolygon:
		out.RingArcs = make([][]int, len(g.Lines))
		for i, idx := range g.Lines {
			out.RingArcs[i] = b.arcRefs[idx]
		}

	case TypeMultiPolygon:
		out.PolygonArcs = make([][][]int, len(g.Polygons))
		for i, ring := range g.Polygons {
			polyArcs := make([][]int, len(ring))
			for j, idx := range ring {
				polyArcs[j] = b.arcRefs[idx]
			}
			out.PolygonArcs[i] = polyArcs
		}

	case TypeGeometryCollection:
		out.Geometries = make([]*Geometry, len(g.Geometries))
		for i, sub := range g.Geometries {
			out.Geometries[i] = b.unpack(sub)
		}
	}

	return out
}
