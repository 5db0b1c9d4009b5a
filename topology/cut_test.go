package topology

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/davy9233/pytopojson/pointhash"
)

func TestCut(t *testing.T) {
	Convey("Given a line candidate with one interior junction", t, func() {
		b := &builder{
			coords: []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
			candidates: []candidate{
				{start: 0, end: 4, isRing: false},
			},
		}
		b.junctions = pointhash.NewHashSet[Point](16, pointhash.Hash, pointhash.Equal)
		_ = b.junctions.Add(Point{1, 1})

		Convey("When cut runs", func() {
			b.cut()

			Convey("Then the candidate splits into two sub-arcs at the junction", func() {
				So(len(b.cutArcs[0]), ShouldEqual, 2)
				So(b.cutArcs[0][0], ShouldResemble, []Point{{0, 0}, {1, 1}})
				So(b.cutArcs[0][1], ShouldResemble, []Point{{1, 1}, {2, 2}, {3, 3}})
			})
		})
	})

	Convey("Given a line candidate with no interior junctions", t, func() {
		b := &builder{
			coords: []Point{{0, 0}, {1, 1}, {2, 2}},
			candidates: []candidate{
				{start: 0, end: 3, isRing: false},
			},
		}
		b.junctions = pointhash.NewHashSet[Point](16, pointhash.Hash, pointhash.Equal)

		Convey("When cut runs", func() {
			b.cut()

			Convey("Then the candidate stays a single arc", func() {
				So(len(b.cutArcs[0]), ShouldEqual, 1)
				So(b.cutArcs[0][0], ShouldResemble, []Point{{0, 0}, {1, 1}, {2, 2}})
			})
		})
	})

	Convey("Given a ring candidate whose junction sits mid-ring", t, func() {
		// ring: (0,0) (1,0) (1,1) (0,1) (0,0), junction at (1,1)
		b := &builder{
			coords: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
			candidates: []candidate{
				{start: 0, end: 5, isRing: true},
			},
		}
		b.junctions = pointhash.NewHashSet[Point](16, pointhash.Hash, pointhash.Equal)
		_ = b.junctions.Add(Point{1, 1})

		Convey("When cut runs", func() {
			b.cut()

			Convey("Then the ring is rotated to start at the junction before cutting", func() {
				So(b.cutArcs[0][0][0], ShouldResemble, Point{1, 1})
			})

			Convey("Then the rotated ring still closes on itself", func() {
				last := b.cutArcs[0][len(b.cutArcs[0])-1]
				So(last[len(last)-1], ShouldResemble, Point{1, 1})
			})
		})
	})
}
