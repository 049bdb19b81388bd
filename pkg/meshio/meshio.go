// Package meshio loads and saves meshes by file extension.
package meshio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meshcut/meshcut/pkg/mesh"
	"github.com/meshcut/meshcut/pkg/openscad"
	"github.com/meshcut/meshcut/pkg/stl"
)

// ErrUnsupportedFormat is returned for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Format identifies a mesh file format
type Format string

const (
	FormatSTL  Format = "stl"
	FormatOBJ  Format = "obj"
	FormatSCAD Format = "scad"
	FormatPLY  Format = "ply"
)

// DetectFormat returns the format implied by path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return FormatSTL, nil
	case ".obj":
		return FormatOBJ, nil
	case ".scad":
		return FormatSCAD, nil
	case ".ply":
		return FormatPLY, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads a mesh from path. The mesh is named after the file.
func Load(path string) (mesh.Mesh, error) {
	return LoadContext(context.Background(), path)
}

// LoadContext is Load with a context bounding external renderers.
func LoadContext(ctx context.Context, path string) (mesh.Mesh, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return mesh.Mesh{}, err
	}

	var m mesh.Mesh
	switch format {
	case FormatSTL:
		m, err = stl.Parse(path)
	case FormatOBJ:
		m, err = readOBJFile(path)
	case FormatPLY:
		m, err = readPLYFile(path)
	case FormatSCAD:
		m, err = openscad.NewRenderer(filepath.Dir(path)).Render(ctx, filepath.Base(path))
	}
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

// Save writes m to path. STL is written binary. PLY and SCAD are read-only.
func Save(path string, m mesh.Mesh) error {
	if m.IsEmpty() {
		return fmt.Errorf("failed to save %s: %w", path, mesh.ErrEmptyMesh)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatSTL:
		err = stl.WriteFile(path, m)
	case FormatOBJ:
		err = writeOBJFile(path, m)
	default:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Dependencies returns the files whose change should trigger a reload of path.
func Dependencies(path string) ([]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSCAD {
		return openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(filepath.Base(path))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}
	return []string{abs}, nil
}
