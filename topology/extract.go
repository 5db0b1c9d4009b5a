package topology

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// extract walks every ingested (and possibly prequantized) geometry,
// moving each line/ring's coordinates into the shared buffer and
// replacing them with an arc candidate index, per spec.md §4.4.
func (b *builder) extract() error {
	b.buildGeoms = make([]*buildGeometry, len(b.geoms))

	for i, g := range b.geoms {
		bg, err := b.extractGeometry(g)
		if err != nil {
			return err
		}
		bg.ID = b.ids[i]
		bg.Properties = b.props[i]
		b.buildGeoms[i] = bg
	}

	return nil
}

func (b *builder) extractGeometry(g *rawGeom) (*buildGeometry, error) {
	bg := &buildGeometry{Type: GeometryType(g.Type)}

	switch g.Type {
	case geojson.GeometryPoint:
		bg.Point = g.Point

	case geojson.GeometryMultiPoint:
		bg.MultiPoint = g.MultiPoint

	case geojson.GeometryLineString:
		idx, err := b.extractLine(g.LineString, false)
		if err != nil {
			return nil, err
		}
		bg.Line = idx

	case geojson.GeometryMultiLineString:
		bg.Lines = make([]int, len(g.MultiLineString))
		for i, l := range g.MultiLineString {
			idx, err := b.extractLine(l, false)
			if err != nil {
				return nil, err
			}
			bg.Lines[i] = idx
		}

	case geojson.GeometryPolygon:
		bg.Lines = make([]int, len(g.Polygon))
		for i, r := range g.Polygon {
			idx, err := b.extractLine(r, true)
			if err != nil {
				return nil, err
			}
			bg.Lines[i] = idx
		}

	case geojson.GeometryMultiPolygon:
		bg.Polygons = make([][]int, len(g.MultiPolygon))
		for i, poly := range g.MultiPolygon {
			rings := make([]int, len(poly))
			for j, r := range poly {
				idx, err := b.extractLine(r, true)
				if err != nil {
					return nil, err
				}
				rings[j] = idx
			}
			bg.Polygons[i] = rings
		}

	case geojson.GeometryCollection:
		bg.Geometries = make([]*buildGeometry, len(g.Geometries))
		for i, sub := range g.Geometries {
			child, err := b.extractGeometry(sub)
			if err != nil {
				return nil, err
			}
			bg.Geometries[i] = child
		}
	}

	return bg, nil
}

// extractLine appends line's points to the shared coordinate buffer and
// registers a new arc candidate for the range they occupy, returning its
// index.
func (b *builder) extractLine(line [][]float64, isRing bool) (int, error) {
	start := len(b.coords)

	for _, p := range line {
		if len(p) < 2 {
			return 0, fmt.Errorf("%w: point must have at least 2 coordinates", ErrInvalidInput)
		}
		b.coords = append(b.coords, Point{p[0], p[1]})
	}

	idx := len(b.candidates)
	b.candidates = append(b.candidates, candidate{start: start, end: len(b.coords), isRing: isRing})
	return idx, nil
}
