package npyexport_test

import (
	"bytes"
	"fmt"

	"github.com/arloliu/npyexport"
	"github.com/arloliu/npyexport/element"
)

func ExampleExportScalars() {
	var buf bytes.Buffer

	res, err := npyexport.ExportScalars(&buf, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 0})
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Version, res.Shape, res.HeaderSize, res.PayloadSize)
	// Output: 1.0 (10,) 80 40
}

func ExampleWithShape() {
	var buf bytes.Buffer
	values := make([]float32, 16)

	res, err := npyexport.ExportScalars(&buf, values, npyexport.WithShape(4, 4))
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Shape, res.DType.Descr(), res.PayloadSize)
	// Output: (4, 4) f4 64
}

func ExampleExport() {
	type point3 struct{ X, Y, Z float64 }

	points := []point3{{0, 0, 0}, {1, 0.5, 0.25}, {2, 1, 0.5}}
	desc := element.Descriptor[point3, float64]{
		Dimensions: 3,
		Access: func(p *point3, i int) *float64 {
			switch i {
			case 0:
				return &p.X
			case 1:
				return &p.Y
			default:
				return &p.Z
			}
		},
	}

	var buf bytes.Buffer
	res, err := npyexport.Export(&buf, points, desc)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Shape, res.Path, res.TotalSize())
	// Output: (3, 3) Bulk 152
}
