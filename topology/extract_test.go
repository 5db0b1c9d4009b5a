package topology

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	geojson "github.com/paulmach/go.geojson"
)

func TestExtract(t *testing.T) {
	Convey("Given a builder holding a point, a line and a polygon", t, func() {
		b := &builder{}
		err := b.ingest([]NamedInput{
			{Name: "point", Object: geojson.NewPointFeature([]float64{1, 2})},
			{Name: "line", Object: geojson.NewLineStringFeature([][]float64{{0, 0}, {1, 1}, {2, 2}})},
			{Name: "polygon", Object: geojson.NewPolygonFeature([][][]float64{
				{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
			})},
		})
		So(err, ShouldBeNil)

		Convey("When extract runs", func() {
			err := b.extract()
			So(err, ShouldBeNil)

			Convey("Then every line/ring's points land in the shared buffer", func() {
				So(len(b.coords), ShouldEqual, 3+4)
			})

			Convey("Then one candidate is registered per line/ring, tagged isRing correctly", func() {
				So(len(b.candidates), ShouldEqual, 2)
				So(b.candidates[0].isRing, ShouldBeFalse)
				So(b.candidates[1].isRing, ShouldBeTrue)
			})

			Convey("Then the point geometry keeps its raw coordinates, not a candidate reference", func() {
				So(b.buildGeoms[0].Point, ShouldResemble, []float64{1, 2})
			})

			Convey("Then the line geometry references its candidate by index", func() {
				So(b.buildGeoms[1].Line, ShouldEqual, 0)
			})

			Convey("Then the polygon geometry references one candidate per ring", func() {
				So(b.buildGeoms[2].Lines, ShouldResemble, []int{1})
			})
		})
	})

	Convey("Given a builder holding a GeometryCollection", t, func() {
		b := &builder{}
		err := b.ingest([]NamedInput{
			{Name: "gc", Object: &geojson.Feature{
				Geometry: &geojson.Geometry{
					Type: geojson.GeometryCollection,
					Geometries: []*geojson.Geometry{
						{Type: geojson.GeometryPoint, Point: []float64{0, 0}},
						{Type: geojson.GeometryLineString, LineString: [][]float64{{0, 0}, {1, 1}}},
					},
				},
			}},
		})
		So(err, ShouldBeNil)

		Convey("When extract runs", func() {
			err := b.extract()
			So(err, ShouldBeNil)

			Convey("Then each child geometry is extracted independently, in order", func() {
				So(len(b.buildGeoms[0].Geometries), ShouldEqual, 2)
				So(b.buildGeoms[0].Geometries[0].Type, ShouldEqual, TypePoint)
				So(b.buildGeoms[0].Geometries[1].Type, ShouldEqual, TypeLineString)
			})
		})
	})
}
