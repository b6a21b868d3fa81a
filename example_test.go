package meshbvh_test

import (
	"fmt"
	"log"

	"github.com/golang/geo/r3"

	meshbvh "github.com/hupe1980/meshbvh"
	"github.com/hupe1980/meshbvh/mask"
	"github.com/hupe1980/meshbvh/mesh"
)

func Example() {
	src := &mesh.Mesh{
		Positions: []r3.Vector{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		CornerVerts: []int{0, 1, 2},
		CornerTris:  [][3]int{{0, 1, 2}},
		FaceOffsets: []int{0, 3},
	}

	builder := meshbvh.New(src)

	tris, err := builder.CornerTris()
	if err != nil {
		log.Fatal(err)
	}

	nearest, ok := tris.NearestPoint(r3.Vector{X: 0.25, Y: 0.25, Z: 1})
	if ok {
		fmt.Printf("nearest: tri %d at (%.2f, %.2f, %.2f)\n", nearest.Index, nearest.Co.X, nearest.Co.Y, nearest.Co.Z)
	}

	hit, ok := tris.RayCast(r3.Vector{X: 0.25, Y: 0.25, Z: 1}, r3.Vector{X: 0, Y: 0, Z: -1}, 0, 100)
	if ok {
		fmt.Printf("ray hit: tri %d at distance %.2f\n", hit.Index, hit.Dist)
	}

	// Output:
	// nearest: tri 0 at (0.25, 0.25, 0.00)
	// ray hit: tri 0 at distance 1.00
}

func ExampleBuilder_Invalidate() {
	src := &mesh.Mesh{
		Positions: []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}},
	}

	builder := meshbvh.New(src)

	verts, _ := builder.Verts()
	nearest, _ := verts.NearestPoint(r3.Vector{X: 1.9, Y: 0, Z: 0})
	fmt.Println("before edit:", nearest.Index)

	src.Positions[1].X = -2
	builder.Invalidate(meshbvh.KindVerts)

	verts, _ = builder.Verts()
	nearest, _ = verts.NearestPoint(r3.Vector{X: 1.9, Y: 0, Z: 0})
	fmt.Println("after edit:", nearest.Index)

	// Output:
	// before edit: 1
	// after edit: 0
}

func ExamplePointCloudLookup() {
	pc := &mesh.PointCloud{
		Positions: []r3.Vector{
			{X: 0, Y: 0, Z: 0},
			{X: 5, Y: 0, Z: 0},
		},
	}

	lookup, err := meshbvh.PointCloudLookup(pc, mask.All())
	if err != nil {
		log.Fatal(err)
	}

	nearest, ok := lookup.NearestPoint(r3.Vector{X: 4, Y: 0, Z: 0})
	fmt.Println(ok, nearest.Index)

	// Output:
	// true 1
}
