package topology

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// Feature expands one named object of a topology back into a GeoJSON
// feature, per spec.md §4.9: cumulatively summing deltas, applying the
// inverse transform, substituting arc indices (and their complements)
// back into the geometry, and concatenating the arcs that make up each
// line or ring.
func Feature(t *Topology, name string) (*geojson.Feature, error) {
	g, ok := t.Objects.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: no object named %q", ErrInvalidTopology, name)
	}

	geom, err := expandGeometry(t, g)
	if err != nil {
		return nil, err
	}

	f := geojson.NewFeature(geom)
	f.ID = g.ID
	f.Properties = g.Properties
	return f, nil
}

func expandGeometry(t *Topology, g *Geometry) (*geojson.Geometry, error) {
	switch g.Type {
	case TypePoint:
		return geojson.NewPointGeometry(packPoint(t, g.Point)), nil

	case TypeMultiPoint:
		return geojson.NewMultiPointGeometry(packPoints(t, g.MultiPoint)...), nil

	case TypeLineString:
		line, err := expandLine(t, g.LineArcs)
		if err != nil {
			return nil, err
		}
		return geojson.NewLineStringGeometry(line), nil

	case TypeMultiLineString:
		lines, err := expandRings(t, g.RingArcs)
		if err != nil {
			return nil, err
		}
		return geojson.NewMultiLineStringGeometry(lines...), nil

	case TypePolygon:
		rings, err := expandRings(t, g.RingArcs)
		if err != nil {
			return nil, err
		}
		return geojson.NewPolygonGeometry(rings), nil

	case TypeMultiPolygon:
		polys := make([][][][]float64, len(g.PolygonArcs))
		for i, poly := range g.PolygonArcs {
			rings, err := expandRings(t, poly)
			if err != nil {
				return nil, err
			}
			polys[i] = rings
		}
		return geojson.NewMultiPolygonGeometry(polys...), nil

	case TypeGeometryCollection:
		geoms := make([]*geojson.Geometry, len(g.Geometries))
		for i, sub := range g.Geometries {
			gg, err := expandGeometry(t, sub)
			if err != nil {
				return nil, err
			}
			geoms[i] = gg
		}
		return geojson.NewCollectionGeometry(geoms...), nil

	default:
		return nil, fmt.Errorf("%w: unknown geometry type %q", ErrInvalidTopology, g.Type)
	}
}

func expandRings(t *Topology, refSets [][]int) ([][][]float64, error) {
	out := make([][][]float64, len(refSets))
	for i, refs := range refSets {
		line, err := expandLine(t, refs)
		if err != nil {
			return nil, err
		}
		out[i] = line
	}
	return out, nil
}

// expandLine concatenates the arcs referenced by refs (in order,
// honoring ones-complement reversal), deduplicating the point shared
// between the end of one arc and the start of the next.
func expandLine(t *Topology, refs []int) ([][]float64, error) {
	var out [][]float64
	for _, ref := range refs {
		pts, err := resolveArc(t, ref)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 && len(pts) > 0 && pointsCoincide2D(out[len(out)-1], pts[0]) {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out, nil
}

// resolveArc returns the absolute, transformed coordinates of the arc
// named by ref (a ones-complement index means "traverse in reverse").
func resolveArc(t *Topology, ref int) ([][]float64, error) {
	idx := ref
	reverse := false
	if idx < 0 {
		idx = ^idx
		reverse = true
	}
	if idx < 0 || idx >= len(t.Arcs) {
		return nil, fmt.Errorf("%w: arc index %d out of range", ErrInvalidTopology, ref)
	}

	arc := t.Arcs[idx]
	abs := make([][]float64, len(arc))

	if t.Transform != nil {
		if t.Transform.Scale[0] == 0 || t.Transform.Scale[1] == 0 {
			return nil, fmt.Errorf("%w: transform has zero scale", ErrInvalidTopology)
		}
		var x, y float64
		for i, p := range arc {
			x += p[0]
			y += p[1]
			abs[i] = []float64{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			}
		}
	} else {
		for i, p := range arc {
			abs[i] = []float64{p[0], p[1]}
		}
	}

	if reverse {
		out := make([][]float64, len(abs))
		for i, p := range abs {
			out[len(abs)-1-i] = p
		}
		return out, nil
	}
	return abs, nil
}

func pointsCoincide2D(a, b []float64) bool {
	return a[0] == b[0] && a[1] == b[1]
}

func packPoint(t *Topology, p []float64) []float64 {
	if t.Transform == nil || p == nil {
		return p
	}
	return []float64{
		p[0]*t.Transform.Scale[0] + t.Transform.Translate[0],
		p[1]*t.Transform.Scale[1] + t.Transform.Translate[1],
	}
}

func packPoints(t *Topology, pts [][]float64) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = packPoint(t, p)
	}
	return out
}
