package topology

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	geojson "github.com/paulmach/go.geojson"
)

func TestBuild(t *testing.T) {
	Convey("Given two adjacent squares sharing an edge", t, func() {
		squareA := geojson.NewPolygonFeature([][][]float64{
			{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
		})
		squareB := geojson.NewPolygonFeature([][][]float64{
			{{1, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 0}},
		})

		Convey("When Build runs with no quantization", func() {
			topo, err := Build([]NamedInput{
				{Name: "a", Object: squareA},
				{Name: "b", Object: squareB},
			}, 0)
			So(err, ShouldBeNil)

			Convey("Then the topology has no transform", func() {
				So(topo.Transform, ShouldBeNil)
			})

			Convey("Then both named objects are present, in input order", func() {
				So(topo.Objects.Names(), ShouldResemble, []string{"a", "b"})
			})

			Convey("Then the shared edge is interned as a single arc", func() {
				// 2 rings, 1 shared edge -> 3 arcs: A's unshared part,
				// B's unshared part, and the shared edge.
				So(len(topo.Arcs), ShouldEqual, 3)
			})

			Convey("Then one object's ring references the shared arc's complement of the other's", func() {
				ga, _ := topo.Objects.Get("a")
				gb, _ := topo.Objects.Get("b")

				shared := map[int]bool{}
				for _, ref := range ga.RingArcs[0] {
					shared[ref] = true
				}
				found := false
				for _, ref := range gb.RingArcs[0] {
					if shared[^ref] {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When Build runs with quantization", func() {
			topo, err := Build([]NamedInput{
				{Name: "a", Object: squareA},
				{Name: "b", Object: squareB},
			}, 1e4)
			So(err, ShouldBeNil)

			Convey("Then the topology carries a transform", func() {
				So(topo.Transform, ShouldNotBeNil)
				So(topo.Transform.Scale[0], ShouldBeGreaterThan, 0)
			})

			Convey("Then arc points are delta-encoded (first point absolute, integral)", func() {
				for _, arc := range topo.Arcs {
					if len(arc) == 0 {
						continue
					}
					So(arc[0][0], ShouldEqual, float64(int64(arc[0][0])))
				}
			})
		})
	})

	Convey("Given a single point object and a single line object", t, func() {
		topo, err := Build([]NamedInput{
			{Name: "p", Object: geojson.NewPointFeature([]float64{5, 5})},
			{Name: "l", Object: geojson.NewLineStringFeature([][]float64{{0, 0}, {1, 1}})},
		}, 0)

		Convey("Then Build succeeds", func() {
			So(err, ShouldBeNil)
		})

		Convey("Then the point object carries raw coordinates, not an arc reference", func() {
			gp, ok := topo.Objects.Get("p")
			So(ok, ShouldBeTrue)
			So(gp.Type, ShouldEqual, TypePoint)
			So(gp.Point, ShouldResemble, []float64{5, 5})
		})

		Convey("Then the line object carries an arc reference", func() {
			gl, ok := topo.Objects.Get("l")
			So(ok, ShouldBeTrue)
			So(gl.Type, ShouldEqual, TypeLineString)
			So(len(gl.LineArcs), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a FeatureCollection with more than one feature", t, func() {
		fc := geojson.NewFeatureCollection()
		fc.AddFeature(geojson.NewPointFeature([]float64{0, 0}))
		fc.AddFeature(geojson.NewPointFeature([]float64{1, 1}))

		topo, err := Build([]NamedInput{{Name: "points", Object: fc}}, 0)

		Convey("Then Build succeeds and expands the collection into sibling objects", func() {
			So(err, ShouldBeNil)
			So(topo.Objects.Names(), ShouldResemble, []string{"points.0", "points.1"})
		})
	})

	Convey("Given invalid input", t, func() {
		Convey("When a feature has no geometry", func() {
			_, err := Build([]NamedInput{{Name: "bad", Object: &geojson.Feature{}}}, 0)

			Convey("Then Build reports ErrInvalidInput", func() {
				So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When quantization is negative", func() {
			_, err := Build([]NamedInput{
				{Name: "p", Object: geojson.NewPointFeature([]float64{0, 0})},
			}, -1)

			Convey("Then Build reports ErrInvalidInput", func() {
				So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			})
		})
	})
}
