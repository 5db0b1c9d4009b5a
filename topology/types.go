// Package topology builds a TopoJSON topology out of one or more named
// GeoJSON objects, deduplicating the line/ring segments shared between
// them into a single arc table, and can expand a topology back into
// GeoJSON. See bounds.go, prequantize.go, extract.go, join.go, cut.go,
// dedup.go and delta.go for the individual pipeline stages; build.go
// wires them together.
package topology

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	geojson "github.com/paulmach/go.geojson"

	"github.com/davy9233/pytopojson/pointhash"
)

// ErrInvalidInput is reported when the input GeoJSON is malformed, has
// non-numeric coordinates, or mixes dimensionality the builder cannot
// reconcile. It aborts the build.
var ErrInvalidInput = errors.New("topology: invalid input")

// ErrInvalidTopology is reported by the inverse (expansion) path when a
// topology references an out-of-range arc or carries a zero-scale
// transform. It aborts expansion.
var ErrInvalidTopology = errors.New("topology: invalid topology")

// Point is an (x, y) pair. Post-quantization both coordinates are
// integers stored as float64.
type Point = pointhash.Point

// Transform is the (scale, translate) pair that inverts prequantization.
// It is present on a Topology only when quantization was requested.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// GeometryType mirrors the GeoJSON/TopoJSON geometry type tag.
type GeometryType string

// The geometry types a Geometry node can carry.
const (
	TypePoint              GeometryType = "Point"
	TypeMultiPoint         GeometryType = "MultiPoint"
	TypeLineString         GeometryType = "LineString"
	TypeMultiLineString    GeometryType = "MultiLineString"
	TypePolygon            GeometryType = "Polygon"
	TypeMultiPolygon       GeometryType = "MultiPolygon"
	TypeGeometryCollection GeometryType = "GeometryCollection"
	TypeNull               GeometryType = "Null"
)

// Geometry is the output-facing geometry node: coordinate arrays for
// lines and rings have been replaced by arc-index references, per
// spec.md's re-architecture note (§9) asking for a tagged variant rather
// than a duck-typed "type" string walk. At most one of the payload
// fields is populated, chosen by Type (none for TypeNull).
type Geometry struct {
	Type       GeometryType
	ID         interface{}
	Properties map[string]interface{}

	// Point holds raw coordinates for TypePoint - points are never arcs.
	Point []float64
	// MultiPoint holds raw coordinates for TypeMultiPoint.
	MultiPoint [][]float64

	// LineArcs holds the arc reference list for TypeLineString.
	LineArcs []int
	// RingArcs holds one arc reference list per ring (TypePolygon) or
	// per line (TypeMultiLineString) - both share this shape.
	RingArcs [][]int
	// PolygonArcs holds one RingArcs-shaped list per polygon, for
	// TypeMultiPolygon.
	PolygonArcs [][][]int

	Geometries []*Geometry
}

type geometryWire struct {
	Type        GeometryType           `json:"type"`
	ID          interface{}            `json:"id,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	Coordinates interface{}            `json:"coordinates,omitempty"`
	Arcs        interface{}            `json:"arcs,omitempty"`
	Geometries  []*Geometry            `json:"geometries,omitempty"`
}

// MarshalJSON writes a Geometry in TopoJSON object form: lines/rings as
// arc-index arrays under "arcs", points as raw coordinates under
// "coordinates".
func (g *Geometry) MarshalJSON() ([]byte, error) {
	w := geometryWire{Type: g.Type, ID: g.ID, Properties: g.Properties}

	switch g.Type {
	case TypePoint:
		w.Coordinates = g.Point
	case TypeMultiPoint:
		w.Coordinates = g.MultiPoint
	case TypeLineString:
		w.Arcs = g.LineArcs
	case TypeMultiLineString, TypePolygon:
		w.Arcs = g.RingArcs
	case TypeMultiPolygon:
		w.Arcs = g.PolygonArcs
	case TypeGeometryCollection:
		w.Geometries = g.Geometries
	case TypeNull, "":
		// nothing to populate
	}

	return json.Marshal(w)
}

// UnmarshalJSON reads a Geometry from TopoJSON object form.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var w struct {
		Type        GeometryType           `json:"type"`
		ID          interface{}            `json:"id,omitempty"`
		Properties  map[string]interface{} `json:"properties,omitempty"`
		Coordinates json.RawMessage        `json:"coordinates,omitempty"`
		Arcs        json.RawMessage        `json:"arcs,omitempty"`
		Geometries  []*Geometry            `json:"geometries,omitempty"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
	}

	g.Type = w.Type
	g.ID = w.ID
	g.Properties = w.Properties
	g.Geometries = w.Geometries

	switch g.Type {
	case TypePoint:
		if len(w.Coordinates) > 0 {
			if err := json.Unmarshal(w.Coordinates, &g.Point); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
			}
		}
	case TypeMultiPoint:
		if len(w.Coordinates) > 0 {
			if err := json.Unmarshal(w.Coordinates, &g.MultiPoint); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
			}
		}
	case TypeLineString:
		if len(w.Arcs) > 0 {
			if err := json.Unmarshal(w.Arcs, &g.LineArcs); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
			}
		}
	case TypeMultiLineString, TypePolygon:
		if len(w.Arcs) > 0 {
			if err := json.Unmarshal(w.Arcs, &g.RingArcs); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
			}
		}
	case TypeMultiPolygon:
		if len(w.Arcs) > 0 {
			if err := json.Unmarshal(w.Arcs, &g.PolygonArcs); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
			}
		}
	}

	return nil
}

// NamedObjects is an insertion-ordered name -> *Geometry mapping.
// spec.md §5 requires objects to iterate in input order for
// deterministic output; a plain Go map cannot do that, so this keeps an
// explicit name list alongside the lookup map, the way the teacher keeps
// a parallel t.objects slice and t.Objects map (unpackobjects.go).
type NamedObjects struct {
	names  []string
	byName map[string]*Geometry
}

// NewNamedObjects returns an empty ordered object set.
func NewNamedObjects() *NamedObjects {
	return &NamedObjects{byName: make(map[string]*Geometry)}
}

// Set inserts or overwrites the geometry stored under name. Overwriting
// an existing name does not change its position in iteration order.
func (o *NamedObjects) Set(name string, g *Geometry) {
	if _, exists := o.byName[name]; !exists {
		o.names = append(o.names, name)
	}
	o.byName[name] = g
}

// Get returns the geometry stored under name, if any.
func (o *NamedObjects) Get(name string) (*Geometry, bool) {
	g, ok := o.byName[name]
	return g, ok
}

// Names returns the object names in insertion order.
func (o *NamedObjects) Names() []string {
	return append([]string(nil), o.names...)
}

// Len returns the number of named objects.
func (o *NamedObjects) Len() int {
	return len(o.names)
}

// MarshalJSON writes the objects as a JSON object, preserving insertion
// order.
func (o *NamedObjects) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range o.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(o.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the objects from a JSON object, recording the key
// order it saw them in.
func (o *NamedObjects) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: objects must be a JSON object", ErrInvalidTopology)
	}

	o.names = nil
	o.byName = make(map[string]*Geometry)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: object key must be a string", ErrInvalidTopology)
		}
		var g Geometry
		if err := dec.Decode(&g); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTopology, err)
		}
		o.Set(name, &g)
	}

	_, err = dec.Token() // closing '}'
	return err
}

// Topology is the final built (or loaded) topology.
type Topology struct {
	Type      string        `json:"type"`
	BBox      [4]float64    `json:"bbox"`
	Transform *Transform    `json:"transform,omitempty"`
	Objects   *NamedObjects `json:"objects"`
	Arcs      [][]Point     `json:"arcs"`
}

// NamedInput is one entry of the ordered collection passed to Build: a
// name paired with a GeoJSON Feature, FeatureCollection, or bare
// Geometry.
type NamedInput struct {
	Name   string
	Object interface{} // *geojson.Feature | *geojson.FeatureCollection | *geojson.Geometry
}

// asGeometry normalizes one NamedInput's Object into a single
// geojson.Geometry plus its properties and id (wrapping feature
// collections and bare geometries in a GeometryCollection-like shape isn't
// right for collections of features with differing properties, so
// FeatureCollections are instead expanded into sibling objects by ingest
// before this is called, and are rejected here).
func asGeometry(obj interface{}) (*geojson.Geometry, map[string]interface{}, interface{}, error) {
	switch v := obj.(type) {
	case *geojson.Feature:
		if v == nil || v.Geometry == nil {
			return nil, nil, nil, fmt.Errorf("%w: feature has no geometry", ErrInvalidInput)
		}
		return v.Geometry, v.Properties, v.ID, nil
	case *geojson.Geometry:
		if v == nil {
			return nil, nil, nil, fmt.Errorf("%w: nil geometry", ErrInvalidInput)
		}
		return v, nil, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: unsupported input object type %T", ErrInvalidInput, obj)
	}
}
