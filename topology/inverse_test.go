package topology

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	geojson "github.com/paulmach/go.geojson"
)

func TestFeature(t *testing.T) {
	Convey("Given a topology with no transform", t, func() {
		objects := NewNamedObjects()
		objects.Set("line", &Geometry{Type: TypeLineString, LineArcs: []int{0}})
		topo := &Topology{
			Type:    "Topology",
			Objects: objects,
			Arcs: [][]Point{
				{{0, 0}, {1, 1}, {2, 2}},
			},
		}

		Convey("When Feature expands the line", func() {
			f, err := Feature(topo, "line")
			So(err, ShouldBeNil)

			Convey("Then the feature's geometry is the arc's raw coordinates", func() {
				So(f.Geometry.Type, ShouldEqual, geojson.GeometryLineString)
				So(f.Geometry.LineString, ShouldResemble, [][]float64{{0, 0}, {1, 1}, {2, 2}})
			})
		})

		Convey("When Feature is asked for a name that doesn't exist", func() {
			_, err := Feature(topo, "nope")

			Convey("Then it reports ErrInvalidTopology", func() {
				So(errors.Is(err, ErrInvalidTopology), ShouldBeTrue)
			})
		})
	})

	Convey("Given a topology with a transform and delta-encoded arcs", t, func() {
		objects := NewNamedObjects()
		objects.Set("line", &Geometry{Type: TypeLineString, LineArcs: []int{0}})
		topo := &Topology{
			Type:      "Topology",
			Transform: &Transform{Scale: [2]float64{1, 1}, Translate: [2]float64{0, 0}},
			Objects:   objects,
			Arcs: [][]Point{
				{{0, 0}, {1, 1}, {-2, 3}}, // absolute: (0,0), then (1,1), then (-1,4)
			},
		}

		Convey("When Feature expands the line", func() {
			f, err := Feature(topo, "line")
			So(err, ShouldBeNil)

			Convey("Then deltas are cumulatively summed before the transform is applied", func() {
				So(f.Geometry.LineString, ShouldResemble, [][]float64{{0, 0}, {1, 1}, {-1, 4}})
			})
		})
	})

	Convey("Given a topology whose ring is built from two arcs sharing an endpoint", t, func() {
		objects := NewNamedObjects()
		objects.Set("ring", &Geometry{Type: TypePolygon, RingArcs: [][]int{{0, 1}}})
		topo := &Topology{
			Type:    "Topology",
			Objects: objects,
			Arcs: [][]Point{
				{{0, 0}, {1, 0}, {1, 1}},
				{{1, 1}, {0, 1}, {0, 0}},
			},
		}

		Convey("When Feature expands the ring", func() {
			f, err := Feature(topo, "ring")
			So(err, ShouldBeNil)

			Convey("Then the shared endpoint between the two arcs is not duplicated", func() {
				ring := f.Geometry.Polygon[0]
				So(ring, ShouldResemble, [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}})
			})
		})
	})

	Convey("Given a topology where a geometry references an arc by its complement", t, func() {
		objects := NewNamedObjects()
		objects.Set("line", &Geometry{Type: TypeLineString, LineArcs: []int{^0}})
		topo := &Topology{
			Type:    "Topology",
			Objects: objects,
			Arcs: [][]Point{
				{{0, 0}, {1, 1}, {2, 2}},
			},
		}

		Convey("When Feature expands the line", func() {
			f, err := Feature(topo, "line")
			So(err, ShouldBeNil)

			Convey("Then the arc is traversed in reverse", func() {
				So(f.Geometry.LineString, ShouldResemble, [][]float64{{2, 2}, {1, 1}, {0, 0}})
			})
		})
	})

	Convey("Given a topology with a zero-scale transform", t, func() {
		objects := NewNamedObjects()
		objects.Set("line", &Geometry{Type: TypeLineString, LineArcs: []int{0}})
		topo := &Topology{
			Type:      "Topology",
			Transform: &Transform{Scale: [2]float64{0, 1}, Translate: [2]float64{0, 0}},
			Objects:   objects,
			Arcs:      [][]Point{{{0, 0}, {1, 1}}},
		}

		Convey("When Feature expands the line", func() {
			_, err := Feature(topo, "line")

			Convey("Then it reports ErrInvalidTopology", func() {
				So(errors.Is(err, ErrInvalidTopology), ShouldBeTrue)
			})
		})
	})

	Convey("Given a topology where a geometry references an out-of-range arc", t, func() {
		objects := NewNamedObjects()
		objects.Set("line", &Geometry{Type: TypeLineString, LineArcs: []int{5}})
		topo := &Topology{
			Type:    "Topology",
			Objects: objects,
			Arcs:    [][]Point{{{0, 0}, {1, 1}}},
		}

		Convey("When Feature expands the line", func() {
			_, err := Feature(topo, "line")

			Convey("Then it reports ErrInvalidTopology", func() {
				So(errors.Is(err, ErrInvalidTopology), ShouldBeTrue)
			})
		})
	})
}
