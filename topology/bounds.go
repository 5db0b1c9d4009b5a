package topology

import "math"

// bounds scans every ingested geometry, computing the global bounding
// box over every point regardless of whether it belongs to a Point or a
// line/ring (spec.md §4.2). It is attached to the topology verbatim and,
// when quantization is requested, consumed by prequantize.
func (b *builder) bounds() {
	b.bbox = [4]float64{
		math.MaxFloat64,
		math.MaxFloat64,
		-math.MaxFloat64,
		-math.MaxFloat64,
	}

	for _, g := range b.geoms {
		b.boundGeometry(g)
	}
}

func (b *builder) boundGeometry(g *rawGeom) {
	if g.Point != nil {
		b.boundPoint(g.Point)
	}
	b.boundLine(g.MultiPoint)
	b.boundLine(g.LineString)
	b.boundMultiLine(g.MultiLineString)
	b.boundMultiLine(g.Polygon)
	for _, poly := range g.MultiPolygon {
		b.boundMultiLine(poly)
	}
	for _, sub := range g.Geometries {
		b.boundGeometry(sub)
	}
}

func (b *builder) boundPoint(p []float64) {
	x, y := p[0], p[1]
	if x < b.bbox[0] {
		b.bbox[0] = x
	}
	if y < b.bbox[1] {
		b.bbox[1] = y
	}
	if x > b.bbox[2] {
		b.bbox[2] = x
	}
	if y > b.bbox[3] {
		b.bbox[3] = y
	}
}

func (b *builder) boundLine(l [][]float64) {
	for _, p := range l {
		b.boundPoint(p)
	}
}

func (b *builder) boundMultiLine(ml [][][]float64) {
	for _, l := range ml {
		b.boundLine(l)
	}
}
