package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// Write encodes m as binary STL with per-face normals. Invalid faces are skipped.
func Write(w io.Writer, m mesh.Mesh) error {
	tris := m.Triangles()
	bw := bufio.NewWriter(w)

	header := make([]byte, headerSize)
	copy(header, m.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	rec := make([]byte, recordSize)
	for i, tri := range tris {
		putVector(rec[0:], tri.Normal())
		putVector(rec[12:], tri.V1)
		putVector(rec[24:], tri.V2)
		putVector(rec[36:], tri.V3)
		binary.LittleEndian.PutUint16(rec[48:], 0)
		if _, err := bw.Write(rec); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteASCII encodes m as ASCII STL.
func WriteASCII(w io.Writer, m mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	name := m.Name
	if name == "" {
		name = "mesh"
	}

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, tri := range m.Triangles() {
		n := tri.Normal()
		fmt.Fprintf(bw, "  facet normal %g %g %g\n    outer loop\n", n.X, n.Y, n.Z)
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// WriteFile writes m to filename as binary STL.
func WriteFile(filename string, m mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func putVector(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
