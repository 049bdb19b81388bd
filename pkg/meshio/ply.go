package meshio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// plyProperty is one scalar or list property of an element
type plyProperty struct {
	name      string
	typ       string
	list      bool
	countType string
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

// plyValues decodes the body one scalar at a time.
type plyValues interface {
	next(typ string) (float64, error)
}

// ReadPLY decodes a Stanford PLY file in ASCII or binary encoding. Vertex
// x/y/z and the face vertex_indices list are used; other elements and
// properties are skipped. Polygons are fan-triangulated.
func ReadPLY(r io.Reader) (mesh.Mesh, error) {
	br := bufio.NewReader(r)
	format, elements, err := readPLYHeader(br)
	if err != nil {
		return mesh.Mesh{}, err
	}

	var values plyValues
	switch format {
	case "ascii":
		sc := bufio.NewScanner(br)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		sc.Split(bufio.ScanWords)
		values = &plyASCII{sc: sc}
	case "binary_little_endian":
		values = &plyBinary{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinary{r: br, order: binary.BigEndian}
	default:
		return mesh.Mesh{}, fmt.Errorf("unknown PLY format %q", format)
	}

	var m mesh.Mesh
	for _, el := range elements {
		for i := 0; i < el.count; i++ {
			if err := readPLYItem(values, el, &m); err != nil {
				return mesh.Mesh{}, fmt.Errorf("%s %d: %w", el.name, i, err)
			}
		}
	}
	return m, nil
}

func readPLYHeader(br *bufio.Reader) (string, []plyElement, error) {
	line, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return "", nil, errors.New("missing PLY magic")
	}

	var format string
	var elements []plyElement
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return "", nil, fmt.Errorf("unterminated PLY header: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return "", nil, errors.New("format line needs an encoding")
			}
			format = fields[1]
		case "element":
			if len(fields) != 3 {
				return "", nil, fmt.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return "", nil, fmt.Errorf("invalid element count %q", fields[2])
			}
			elements = append(elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(elements) == 0 {
				return "", nil, errors.New("property before any element")
			}
			var p plyProperty
			switch {
			case len(fields) == 5 && fields[1] == "list":
				p = plyProperty{name: fields[4], typ: fields[3], list: true, countType: fields[2]}
			case len(fields) == 3:
				p = plyProperty{name: fields[2], typ: fields[1]}
			default:
				return "", nil, fmt.Errorf("invalid property line %q", strings.TrimSpace(line))
			}
			last := &elements[len(elements)-1]
			last.props = append(last.props, p)
		case "end_header":
			if format == "" {
				return "", nil, errors.New("PLY header has no format")
			}
			return format, elements, nil
		}
	}
}

func readPLYItem(values plyValues, el plyElement, m *mesh.Mesh) error {
	var coord [3]float64
	var indices []int

	for _, p := range el.props {
		if !p.list {
			v, err := values.next(p.typ)
			if err != nil {
				return err
			}
			switch p.name {
			case "x":
				coord[0] = v
			case "y":
				coord[1] = v
			case "z":
				coord[2] = v
			}
			continue
		}

		n, err := values.next(p.countType)
		if err != nil {
			return err
		}
		keep := el.name == "face" && (p.name == "vertex_indices" || p.name == "vertex_index")
		for k := 0; k < int(n); k++ {
			v, err := values.next(p.typ)
			if err != nil {
				return err
			}
			if keep {
				indices = append(indices, int(v))
			}
		}
	}

	switch el.name {
	case "vertex":
		m.AddVertex(geometry.NewVector3(coord[0], coord[1], coord[2]))
	case "face":
		for _, i := range indices {
			if i < 0 || i >= m.VertexCount() {
				return fmt.Errorf("vertex index %d out of range (%d vertices)", i, m.VertexCount())
			}
		}
		for k := 1; k+1 < len(indices); k++ {
			a, b, c := indices[0], indices[k], indices[k+1]
			if a == b || b == c || a == c {
				continue
			}
			m.AddFace(a, b, c)
		}
	}
	return nil
}

type plyASCII struct {
	sc *bufio.Scanner
}

func (a *plyASCII) next(string) (float64, error) {
	if !a.sc.Scan() {
		if err := a.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.sc.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", a.sc.Text())
	}
	return v, nil
}

type plyBinary struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *plyBinary) next(typ string) (float64, error) {
	size, ok := plyTypeSize(typ)
	if !ok {
		return 0, fmt.Errorf("unknown PLY type %q", typ)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}

	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

func plyTypeSize(typ string) (int, bool) {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1, true
	case "short", "int16", "ushort", "uint16":
		return 2, true
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4, true
	case "double", "float64":
		return 8, true
	}
	return 0, false
}

func readPLYFile(path string) (mesh.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return ReadPLY(file)
}
