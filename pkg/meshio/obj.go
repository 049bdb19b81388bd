package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// ReadOBJ decodes Wavefront OBJ geometry. Only v and f records are used;
// polygons are fan-triangulated and texture/normal references are ignored.
func ReadOBJ(r io.Reader) (mesh.Mesh, error) {
	var m mesh.Mesh
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o":
			if len(fields) > 1 && m.Name == "" {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "v":
			if len(fields) < 4 {
				return mesh.Mesh{}, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float64
			for i := range c {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return mesh.Mesh{}, fmt.Errorf("line %d: invalid coordinate %q", lineNo, fields[i+1])
				}
				c[i] = v
			}
			m.AddVertex(geometry.NewVector3(c[0], c[1], c[2]))

		case "f":
			if len(fields) < 4 {
				return mesh.Mesh{}, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := objIndex(ref, len(m.Vertices))
				if err != nil {
					return mesh.Mesh{}, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, i)
			}
			// Repeated references collapse fan triangles; those are skipped.
			for k := 1; k+1 < len(idx); k++ {
				a, b, c := idx[0], idx[k], idx[k+1]
				if a == b || b == c || a == c {
					continue
				}
				m.AddFace(a, b, c)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return mesh.Mesh{}, fmt.Errorf("error reading OBJ: %w", err)
	}
	return m, nil
}

// objIndex converts a 1-based or negative (relative) OBJ reference to a
// 0-based index.
func objIndex(ref string, count int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex reference %q", ref)
	}

	var i int
	switch {
	case n > 0:
		i = n - 1
	case n < 0:
		i = count + n
	default:
		return 0, fmt.Errorf("vertex reference 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("vertex reference %d out of range (%d vertices)", n, count)
	}
	return i, nil
}

// WriteOBJ encodes m as Wavefront OBJ with 1-based indices.
func WriteOBJ(w io.Writer, m mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		if m.FaceValid(f) {
			fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
		}
	}
	return bw.Flush()
}

func readOBJFile(path string) (mesh.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return ReadOBJ(file)
}

func writeOBJFile(path string, m mesh.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteOBJ(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
