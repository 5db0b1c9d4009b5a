package topology

// cut re-splits each arc candidate at the junctions join found, producing
// the final sequence of minimal arcs for each candidate (spec.md §4.6).
// Duplicate and reversed-duplicate arcs across candidates are discovered
// next, by dedup.
func (b *builder) cut() {
	b.cutArcs = make([][][]Point, len(b.candidates))

	for ci, c := range b.candidates {
		if c.isRing {
			b.cutArcs[ci] = b.cutRing(c)
		} else {
			b.cutArcs[ci] = b.cutSlice(b.coords[c.start:c.end])
		}
	}
}

// cutSlice splits pts wherever an interior point (never the first or
// last) is a junction, returning the resulting sub-slices in order. Each
// split point is shared between the two sub-arcs it separates, so their
// union reproduces pts exactly.
func (b *builder) cutSlice(pts []Point) [][]Point {
	var result [][]Point
	cur := 0
	n := len(pts)

	for i := 1; i <= n-2; i++ {
		if b.junctions.Has(pts[i]) {
			result = append(result, copyPoints(pts[cur:i+1]))
			cur = i
		}
	}
	result = append(result, copyPoints(pts[cur:n]))

	return result
}

// cutRing rotates a ring so it begins at a junction (spec.md §4.6: "first
// rotate so the range begins at a junction"), then cuts it like a line.
// ensureRingJunctions guarantees at least one junction exists on every
// ring, so rotate is always found.
func (b *builder) cutRing(c candidate) [][]Point {
	n := c.end - c.start
	if n < 2 {
		return [][]Point{copyPoints(b.coords[c.start:c.end])}
	}

	m := n - 1 // distinct points, excluding the closing duplicate
	rotate := 0
	for i := 0; i < m; i++ {
		if b.junctions.Has(b.coords[c.start+i]) {
			rotate = i
			break
		}
	}

	rotated := make([]Point, 0, n)
	for i := 0; i < m; i++ {
		rotated = append(rotated, b.coords[c.start+(rotate+i)%m])
	}
	rotated = append(rotated, rotated[0])

	return b.cutSlice(rotated)
}

func copyPoints(pts []Point) []Point {
	return append([]Point(nil), pts...)
}
