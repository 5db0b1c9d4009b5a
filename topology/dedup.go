package topology

import "github.com/davy9233/pytopojson/pointhash"

// arcKey normalizes an arc's identity down to its endpoints and length,
// the way spec.md §4.7 describes: a coarse key that buckets candidates,
// with the expensive point-by-point comparison only happening within a
// bucket.
type arcKey struct {
	first, last Point
	length      int
}

func arcKeyHash(k arcKey) uint64 {
	return pointhash.Hash(k.first)*31 + pointhash.Hash(k.last) + uint64(k.length)
}

func arcKeyEqual(a, b arcKey) bool {
	return a.length == b.length && pointhash.Equal(a.first, b.first) && pointhash.Equal(a.last, b.last)
}

// dedup interns every cut sub-arc into the final, deduplicated arcs
// table, rewriting each candidate's arc references as forward (i) or
// reverse (complement of i) indices into that table (spec.md §4.7).
func (b *builder) dedup() {
	total := 0
	for _, sub := range b.cutArcs {
		total += len(sub)
	}

	index := pointhash.NewHashMap[arcKey, []int](2*total, arcKeyHash, arcKeyEqual)

	b.arcRefs = make([][]int, len(b.candidates))
	for ci, subArcs := range b.cutArcs {
		refs := make([]int, len(subArcs))
		for si, pts := range subArcs {
			refs[si] = b.internArc(index, pts)
		}
		b.arcRefs[ci] = refs
	}
}

// internArc finds or creates the canonical arc for pts, returning its
// index (or its ones-complement if pts is that arc's points in reverse).
func (b *builder) internArc(index *pointhash.HashMap[arcKey, []int], pts []Point) int {
	n := len(pts)
	first, last := pts[0], pts[n-1]
	fwdKey := arcKey{first: first, last: last, length: n}
	revKey := arcKey{first: last, last: first, length: n}

	if i, ok := matchBucket(index, fwdKey, b.arcs, pts); ok {
		return i
	}
	if revKey != fwdKey {
		if i, ok := matchBucket(index, revKey, b.arcs, pts); ok {
			return i
		}
	}

	i := len(b.arcs)
	b.arcs = append(b.arcs, copyPoints(pts))

	appendToBucket(index, fwdKey, i)
	if revKey != fwdKey {
		appendToBucket(index, revKey, i)
	}

	return i
}

// matchBucket scans the bucket stored under key (if any) for an arc that
// equals pts forward or reversed.
func matchBucket(index *pointhash.HashMap[arcKey, []int], key arcKey, arcs [][]Point, pts []Point) (int, bool) {
	bucket, ok := index.Get(key)
	if !ok {
		return 0, false
	}
	for _, i := range bucket {
		if pointsEqual(arcs[i], pts) {
			return i, true
		}
		if pointsEqualReversed(arcs[i], pts) {
			return ^i, true
		}
	}
	return 0, false
}

func appendToBucket(index *pointhash.HashMap[arcKey, []int], key arcKey, i int) {
	bucket, _ := index.Get(key)
	bucket = append(bucket, i)
	_, _ = index.Set(key, bucket)
}

func pointsEqual(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !pointhash.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func pointsEqualReversed(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	for i := range a {
		if !pointhash.Equal(a[i], b[n-1-i]) {
			return false
		}
	}
	return true
}
