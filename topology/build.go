package topology

import (
	"fmt"
	"time"

	geojson "github.com/paulmach/go.geojson"

	"github.com/davy9233/pytopojson/health"
	"github.com/davy9233/pytopojson/pointhash"
)

// rawGeom is a mutable clone of a geojson.Geometry, owned by a single
// build. Cloning the caller's input here means prequantize can rewrite
// coordinates freely without mutating the geojson.Feature/Geometry the
// caller passed in - spec.md §9 calls out the source's habit of mutating
// input arrays in place as something to re-architect around.
type rawGeom struct {
	Type            geojson.GeometryType
	Point           []float64
	MultiPoint      [][]float64
	LineString      [][]float64
	MultiLineString [][][]float64
	Polygon         [][][]float64
	MultiPolygon    [][][][]float64
	Geometries      []*rawGeom
}

func cloneGeometry(g *geojson.Geometry) (*rawGeom, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrInvalidInput)
	}

	r := &rawGeom{Type: g.Type}

	switch g.Type {
	case geojson.GeometryPoint:
		if err := validatePoint(g.Point); err != nil {
			return nil, err
		}
		r.Point = append([]float64(nil), g.Point...)
	case geojson.GeometryMultiPoint:
		r.MultiPoint = cloneLine(g.MultiPoint)
	case geojson.GeometryLineString:
		r.LineString = cloneLine(g.LineString)
	case geojson.GeometryMultiLineString:
		r.MultiLineString = cloneMultiLine(g.MultiLineString)
	case geojson.GeometryPolygon:
		r.Polygon = cloneMultiLine(g.Polygon)
	case geojson.GeometryMultiPolygon:
		r.MultiPolygon = make([][][][]float64, len(g.MultiPolygon))
		for i, poly := range g.MultiPolygon {
			r.MultiPolygon[i] = cloneMultiLine(poly)
		}
	case geojson.GeometryCollection:
		r.Geometries = make([]*rawGeom, len(g.Geometries))
		for i, sub := range g.Geometries {
			clone, err := cloneGeometry(sub)
			if err != nil {
				return nil, err
			}
			r.Geometries[i] = clone
		}
	default:
		return nil, fmt.Errorf("%w: unsupported geometry type %q", ErrInvalidInput, g.Type)
	}

	for _, p := range flattenRawPoints(r) {
		if err := validatePoint(p); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func validatePoint(p []float64) error {
	if len(p) < 2 {
		return fmt.Errorf("%w: point must have at least 2 coordinates", ErrInvalidInput)
	}
	for _, v := range p[:2] {
		if v != v { // NaN
			return fmt.Errorf("%w: non-numeric coordinate", ErrInvalidInput)
		}
	}
	return nil
}

func cloneLine(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, p := range in {
		out[i] = append([]float64(nil), p...)
	}
	return out
}

func cloneMultiLine(in [][][]float64) [][][]float64 {
	out := make([][][]float64, len(in))
	for i, l := range in {
		out[i] = cloneLine(l)
	}
	return out
}

// buildGeometry is the build-time counterpart of Geometry: coordinate
// arrays for lines/rings have been replaced by indices into
// builder.candidates (spec.md §9's "parallel tree" re-architecture).
// Final arc references are resolved into Geometry only once dedup has
// run (see unpack.go).
type buildGeometry struct {
	Type       GeometryType
	ID         interface{}
	Properties map[string]interface{}

	Point      []float64
	MultiPoint [][]float64

	Line     int   // candidate index, for LineString
	Lines    []int // candidate indices, for Polygon rings or MultiLineString lines
	Polygons [][]int

	Geometries []*buildGeometry
}

// candidate is an arc candidate: a half-open range into builder.coords
// representing one input line or ring, before cutting.
type candidate struct {
	start, end int
	isRing     bool
}

type builder struct {
	names []string
	geoms []*rawGeom
	ids   []interface{}
	props []map[string]interface{}

	quantization int
	bbox         [4]float64
	transform    *Transform

	coords []Point

	candidates []candidate
	buildGeoms []*buildGeometry

	neighbor  *pointhash.HashMap[Point, neighborPair]
	junctions *pointhash.HashSet[Point]

	// cutArcs holds, per candidate, the ordered list of point sequences
	// it was split into at junctions (spec.md §4.6). Materializing these
	// as copied []Point slices (rather than further index ranges into
	// coords) keeps ring rotation simple: a ring that must be cut
	// starting at an interior junction is a reordering of its own
	// points, not a contiguous range of the original buffer.
	cutArcs [][][]Point

	arcs    [][]Point
	arcRefs [][]int // parallel to candidates: final (possibly complemented) arc indices
}

// neighborPair is the unordered {prev, next} pair join.go tracks per
// point. hasPrev/hasNext distinguish a real neighbor from the sentinel
// used at open-line endpoints.
type neighborPair struct {
	prev, next       Point
	hasPrev, hasNext bool
}

// Build runs the full bounds -> prequantize? -> extract -> join -> cut ->
// dedup -> delta pipeline over objects, producing a Topology whose arcs
// are deduplicated and whose objects preserve objects' input order.
// quantization of 0 disables prequantization.
func Build(objects []NamedInput, quantization int) (*Topology, error) {
	if quantization < 0 {
		return nil, fmt.Errorf("%w: quantization must be >= 0", ErrInvalidInput)
	}

	b := &builder{quantization: quantization}

	if err := b.ingest(objects); err != nil {
		return nil, err
	}

	timed("bounds", b.bounds)

	if b.quantization > 0 {
		timed("prequantize", b.prequantize)
	}

	var extractErr error
	timed("extract", func() { extractErr = b.extract() })
	if extractErr != nil {
		return nil, extractErr
	}

	timed("join", b.join)
	timed("cut", b.cut)
	timed("dedup", b.dedup)

	if b.transform != nil {
		timed("delta", b.delta)
	}

	return b.topology(), nil
}

// timed records how long fn took under name, via health.RecordTime - the
// teacher's per-handler timing helper, repurposed to per-stage timing.
func timed(name string, fn func()) {
	defer health.RecordTime(time.Now(), name)
	fn()
}

// ingest normalizes every NamedInput into a name + cloned geometry +
// properties + id, expanding FeatureCollections into one sibling object
// per feature named "<name>.<index>" (a feature collection has no single
// geometry of its own to assign id/properties to). A collection holding
// exactly one feature is not expanded: that feature keeps "<name>".
func (b *builder) ingest(objects []NamedInput) error {
	for _, in := range objects {
		switch v := in.Object.(type) {
		case *geojson.FeatureCollection:
			if v == nil {
				return fmt.Errorf("%w: nil feature collection for %q", ErrInvalidInput, in.Name)
			}
			for i, f := range v.Features {
				name := fmt.Sprintf("%s.%d", in.Name, i)
				if len(v.Features) == 1 {
					name = in.Name
				}
				if err := b.ingestOne(name, f); err != nil {
					return err
				}
			}
		default:
			if err := b.ingestOne(in.Name, in.Object); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) ingestOne(name string, obj interface{}) error {
	geom, props, id, err := asGeometry(obj)
	if err != nil {
		return fmt.Errorf("%w (object %q): %v", ErrInvalidInput, name, err)
	}
	raw, err := cloneGeometry(geom)
	if err != nil {
		return fmt.Errorf("%w (object %q): %v", ErrInvalidInput, name, err)
	}
	b.names = append(b.names, name)
	b.geoms = append(b.geoms, raw)
	b.props = append(b.props, props)
	b.ids = append(b.ids, id)
	return nil
}

func flattenRawPoints(g *rawGeom) [][]float64 {
	var pts [][]float64
	switch g.Type {
	case geojson.GeometryPoint:
		pts = append(pts, g.Point)
	case geojson.GeometryMultiPoint:
		pts = append(pts, g.MultiPoint...)
	case geojson.GeometryLineString:
		pts = append(pts, g.LineString...)
	case geojson.GeometryMultiLineString:
		for _, l := range g.MultiLineString {
			pts = append(pts, l...)
		}
	case geojson.GeometryPolygon:
		for _, l := range g.Polygon {
			pts = append(pts, l...)
		}
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			for _, l := range poly {
				pts = append(pts, l...)
			}
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			pts = append(pts, flattenRawPoints(sub)...)
		}
	}
	return pts
}

func (b *builder) topology() *Topology {
	objects := NewNamedObjects()
	for i, name := range b.names {
		objects.Set(name, b.unpack(b.buildGeoms[i]))
	}

	return &Topology{
		Type:      "Topology",
		BBox:      b.bbox,
		Transform: b.transform,
		Objects:   objects,
		Arcs:      b.arcs,
	}
}
