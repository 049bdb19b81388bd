// Package openscad loads .scad models by running the openscad binary and
// tracks the files a model pulls in through use/include.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/meshcut/meshcut/pkg/mesh"
	"github.com/meshcut/meshcut/pkg/stl"
)

// ErrNotInstalled is returned when no openscad binary is on PATH.
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

var (
	useRegex     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRegex = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Renderer converts OpenSCAD sources to meshes
type Renderer struct {
	workDir string
	binary  string
}

// NewRenderer creates a renderer resolving relative paths against workDir.
func NewRenderer(workDir string) *Renderer {
	return &Renderer{workDir: workDir, binary: "openscad"}
}

// Available reports whether the openscad binary can be found.
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Render runs openscad on scadFile and returns the resulting mesh.
func (r *Renderer) Render(ctx context.Context, scadFile string) (mesh.Mesh, error) {
	if !r.Available() {
		return mesh.Mesh{}, ErrNotInstalled
	}

	tmp, err := os.MkdirTemp("", "meshcut-scad-")
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	out := filepath.Join(tmp, "model.stl")
	if err := r.RenderToSTL(ctx, scadFile, out); err != nil {
		return mesh.Mesh{}, err
	}

	m, err := stl.Parse(out)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("failed to read openscad output: %w", err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))
	return m, nil
}

// RenderToSTL renders scadFile into outputFile.
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	cmd := exec.CommandContext(ctx, r.binary, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var msg strings.Builder
		fmt.Fprintf(&msg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			fmt.Fprintf(&msg, "\nstderr: %s", stderr.String())
		}
		if stdout.Len() > 0 {
			fmt.Fprintf(&msg, "\nstdout: %s", stdout.String())
		}
		return errors.New(msg.String())
	}
	return nil
}

// ResolveDependencies returns scadFile and every file it reaches through
// use/include, as absolute paths, each once.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string
	if err := r.resolve(r.abs(scadFile), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) resolve(scadFile string, visited map[string]bool, deps *[]string) error {
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	direct, err := r.parseDependencies(scadFile)
	if err != nil {
		return err
	}
	for _, dep := range direct {
		if err := r.resolve(dep, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		for _, re := range []*regexp.Regexp{useRegex, includeRegex} {
			if m := re.FindStringSubmatch(line); len(m) > 1 {
				deps = append(deps, r.resolveDepPath(m[1], dir))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath tries the including file's directory, then the work directory.
func (r *Renderer) resolveDepPath(dep, currentDir string) string {
	local := filepath.Clean(filepath.Join(currentDir, dep))
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Clean(filepath.Join(r.workDir, dep))
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}
