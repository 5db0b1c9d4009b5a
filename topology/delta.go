package topology

// delta converts each arc's absolute coordinates into successive
// differences (spec.md §4.8): the first point of an arc stays absolute,
// every later point is stored as the difference from its predecessor.
// This only runs when quantization was applied - without it, arcs retain
// absolute coordinates, since deltas of arbitrary floats buy nothing.
func (b *builder) delta() {
	for ai, arc := range b.arcs {
		if len(arc) == 0 {
			continue
		}

		out := make([]Point, len(arc))
		out[0] = arc[0]
		for i := 1; i < len(arc); i++ {
			out[i] = Point{arc[i][0] - arc[i-1][0], arc[i][1] - arc[i-1][1]}
		}
		b.arcs[ai] = out
	}
}
