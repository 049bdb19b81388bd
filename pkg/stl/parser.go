// Package stl reads and writes STL triangle meshes.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

const (
	headerSize = 80
	recordSize = 50
)

// Parse reads an STL file and returns a welded mesh.
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read decodes an STL stream. Binary files are recognised by their exact size,
// so binary headers starting with "solid" are still read correctly.
func Read(r io.Reader) (mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to read STL: %w", err)
	}

	var (
		name string
		tris []geometry.Triangle
	)
	if isBinary(data) {
		name, tris, err = parseBinary(data)
	} else if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		name, tris, err = parseASCII(bytes.NewReader(data))
	} else {
		err = fmt.Errorf("not an STL file (%d bytes)", len(data))
	}
	if err != nil {
		return mesh.Mesh{}, err
	}

	return mesh.FromTriangles(name, tris, 0), nil
}

func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return uint64(len(data)) == uint64(headerSize+4)+uint64(count)*recordSize
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (string, []geometry.Triangle, error) {
	scanner := bufio.NewScanner(reader)
	var (
		name     string
		tris     []geometry.Triangle
		vertices []geometry.Vector3
		lineNo   int
	)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}

		case "outer":
			vertices = vertices[:0]

		case "vertex":
			if len(fields) < 4 {
				return "", nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return "", nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return "", nil, fmt.Errorf("line %d: facet has %d vertices", lineNo, len(vertices))
			}
			tris = append(tris, geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return name, tris, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q", f)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseBinary parses a binary STL file. The size was validated by isBinary.
func parseBinary(data []byte) (string, []geometry.Triangle, error) {
	name := strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00")))
	count := binary.LittleEndian.Uint32(data[headerSize:])

	tris := make([]geometry.Triangle, 0, count)
	offset := headerSize + 4
	for i := uint32(0); i < count; i++ {
		rec := data[offset : offset+recordSize]
		// Skip the stored normal; it is recomputed from the winding.
		v1 := readVector(rec[12:])
		v2 := readVector(rec[24:])
		v3 := readVector(rec[36:])
		if !finite(v1) || !finite(v2) || !finite(v3) {
			return "", nil, fmt.Errorf("triangle %d has a non-finite vertex", i)
		}
		tris = append(tris, geometry.NewTriangle(v1, v2, v3))
		offset += recordSize
	}
	return name, tris, nil
}

func readVector(b []byte) geometry.Vector3 {
	x := math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	z := math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
	return geometry.NewVector3(float64(x), float64(y), float64(z))
}

func finite(v geometry.Vector3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
