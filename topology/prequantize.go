package topology

import geojson "github.com/paulmach/go.geojson"

// prequantize snaps every coordinate of every ingested geometry onto a
// b.quantization x b.quantization integer grid covering b.bbox, per
// spec.md §4.3. It mutates the builder's own cloned geometries (never
// the caller's input) and records the resulting Transform.
func (b *builder) prequantize() {
	q := newQuantizer(b.bbox, b.quantization)

	for _, g := range b.geoms {
		b.prequantizeGeometry(q, g)
	}

	b.transform = q.transform()
}

func (b *builder) prequantizeGeometry(q *quantizer, g *rawGeom) {
	switch g.Type {
	case geojson.GeometryPoint:
		g.Point = q.point(g.Point)
	case geojson.GeometryMultiPoint:
		g.MultiPoint = q.line(g.MultiPoint, false)
	case geojson.GeometryLineString:
		g.LineString = q.line(g.LineString, true)
	case geojson.GeometryMultiLineString:
		g.MultiLineString = q.multiLine(g.MultiLineString, true)
	case geojson.GeometryPolygon:
		g.Polygon = q.multiLine(g.Polygon, true)
	case geojson.GeometryMultiPolygon:
		for i, poly := range g.MultiPolygon {
			g.MultiPolygon[i] = q.multiLine(poly, true)
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			b.prequantizeGeometry(q, sub)
		}
	}
}
