package topology

import "github.com/davy9233/pytopojson/pointhash"

// join identifies every junction point: a point where arcs must be cut so
// that any shared segment ends up in exactly one arc. Per spec.md §4.5, a
// point is a junction iff, across all of its occurrences in all arc
// candidates, it has more than one distinct unordered {prev, next}
// neighbor pair - plus every endpoint of an open line, unconditionally.
func (b *builder) join() {
	total := 0
	for _, c := range b.candidates {
		total += c.end - c.start
	}
	size := 2 * total

	b.neighbor = pointhash.NewHashMap[Point, neighborPair](size, pointhash.Hash, pointhash.Equal)
	b.junctions = pointhash.NewHashSet[Point](size, pointhash.Hash, pointhash.Equal)

	for ci := range b.candidates {
		b.joinCandidate(ci)
	}

	b.ensureRingJunctions()
}

func (b *builder) joinCandidate(ci int) {
	c := b.candidates[ci]
	n := c.end - c.start

	if c.isRing {
		b.joinRing(c, n)
		return
	}
	b.joinLine(c, n)
}

// joinRing visits every distinct point of a ring (the closing duplicate
// at position n-1 is never visited itself), treating neighbors
// rotationally: the point before the first is the second-to-last, and
// the point after the last distinct point is the first.
func (b *builder) joinRing(c candidate, n int) {
	m := n - 1 // distinct point count
	if m <= 0 {
		return
	}

	for i := 0; i < m; i++ {
		p := b.coords[c.start+i]
		prev := b.coords[c.start+(i-1+m)%m]
		next := b.coords[c.start+(i+1)%m]
		b.visit(p, neighborPair{prev: prev, next: next, hasPrev: true, hasNext: true})
	}
}

// joinLine visits every point of an open line. Its two endpoints are
// always junctions: each has only a sentinel on one side, which can never
// match an interior occurrence of the same point elsewhere.
func (b *builder) joinLine(c candidate, n int) {
	for i := 0; i < n; i++ {
		p := b.coords[c.start+i]

		np := neighborPair{}
		if i > 0 {
			np.prev = b.coords[c.start+i-1]
			np.hasPrev = true
		}
		if i < n-1 {
			np.next = b.coords[c.start+i+1]
			np.hasNext = true
		}

		if i == 0 || i == n-1 {
			_ = b.junctions.Add(p)
		}

		b.visit(p, np)
	}
}

// visit records p's first-seen neighbor pair, or marks p a junction if a
// later occurrence's pair differs from the one already recorded.
func (b *builder) visit(p Point, np neighborPair) {
	existing, ok := b.neighbor.Get(p)
	if !ok {
		_, _ = b.neighbor.Set(p, np)
		return
	}
	if !neighborEqual(existing, np) {
		_ = b.junctions.Add(p)
	}
}

// neighborEqual compares two neighbor pairs as unordered sets, honoring
// the hasPrev/hasNext sentinel flags used at open-line endpoints.
func neighborEqual(a, b neighborPair) bool {
	if a.hasPrev != b.hasPrev || a.hasNext != b.hasNext {
		return false
	}

	straight := (!a.hasPrev || pointhash.Equal(a.prev, b.prev)) &&
		(!a.hasNext || pointhash.Equal(a.next, b.next))
	swapped := (!a.hasPrev || !b.hasNext || pointhash.Equal(a.prev, b.next)) &&
		(!a.hasNext || !b.hasPrev || pointhash.Equal(a.next, b.prev))

	return straight || swapped
}

// ensureRingJunctions guarantees every ring candidate has at least one
// junction on it, per spec.md §4.5's rings subtlety: a ring with no
// naturally occurring junction still needs one arbitrary cut point (its
// own starting point) so cut can turn it into a single closed arc.
func (b *builder) ensureRingJunctions() {
	for _, c := range b.candidates {
		if !c.isRing {
			continue
		}
		n := c.end - c.start
		if n < 2 {
			continue
		}

		found := false
		for i := 0; i < n-1; i++ {
			if b.junctions.Has(b.coords[c.start+i]) {
				found = true
				break
			}
		}
		if !found {
			_ = b.junctions.Add(b.coords[c.start])
		}
	}
}
