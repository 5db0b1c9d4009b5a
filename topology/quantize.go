package topology

import "math"

// quantizer snaps coordinates onto an integer grid covering a bounding
// box, per spec.md §4.3. It is a small value type, not a pipeline stage
// itself - prequantize.go drives it over every ingested geometry.
type quantizer struct {
	x0, y0, kx, ky float64
}

func newQuantizer(bbox [4]float64, q int) *quantizer {
	x0, y0, x1, y1 := bbox[0], bbox[1], bbox[2], bbox[3]

	kx := 1.0
	if x1 != x0 {
		kx = float64(q-1) / (x1 - x0)
	}

	ky := 1.0
	if y1 != y0 {
		ky = float64(q-1) / (y1 - y0)
	}

	return &quantizer{x0: x0, y0: y0, kx: kx, ky: ky}
}

// transform returns the (scale, translate) pair that inverts this
// quantizer.
func (q *quantizer) transform() *Transform {
	return &Transform{
		Scale:     [2]float64{1 / q.kx, 1 / q.ky},
		Translate: [2]float64{q.x0, q.y0},
	}
}

func (q *quantizer) point(p []float64) []float64 {
	return []float64{
		round((p[0] - q.x0) * q.kx),
		round((p[1] - q.y0) * q.ky),
	}
}

func round(v float64) float64 {
	if v < 0 {
		return math.Ceil(v - 0.5)
	}
	return math.Floor(v + 0.5)
}

// line quantizes every point of in. When dedupe is true, consecutive
// points that snap to the same grid cell are collapsed to one - this is
// only correct for lines/rings, never for a MultiPoint's independent
// points, per spec.md §4.3.
//
// A ring or line that collapses to fewer than 4 points is returned as
// collapsed, with no padding back up to 4: spec.md's design notes (§9)
// call this out explicitly as ambiguous-but-observed source behavior to
// preserve, not paper over.
func (q *quantizer) line(in [][]float64, dedupe bool) [][]float64 {
	out := make([][]float64, 0, len(in))
	var last []float64

	for _, p := range in {
		qp := q.point(p)
		if dedupe && last != nil && qp[0] == last[0] && qp[1] == last[1] {
			continue
		}
		out = append(out, qp)
		last = qp
	}

	return out
}

func (q *quantizer) multiLine(in [][][]float64, dedupe bool) [][][]float64 {
	out := make([][][]float64, len(in))
	for i, l := range in {
		out[i] = q.line(l, dedupe)
	}
	return out
}
