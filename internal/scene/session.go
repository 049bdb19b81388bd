// Package scene holds the editing session behind the CLI and the viewer: the
// target being cut, the positioned cutter and the latest cut outputs.
package scene

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/meshcut/meshcut/internal/config"
	"github.com/meshcut/meshcut/pkg/analysis"
	"github.com/meshcut/meshcut/pkg/boolean"
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
	"github.com/meshcut/meshcut/pkg/meshio"
	"github.com/meshcut/meshcut/pkg/primitive"
	"github.com/meshcut/meshcut/pkg/render"
)

// Cutter placement limits
const (
	PositionLimit = 500.0
	MinStep       = 0.01
	MaxStep       = 100.0
)

var (
	// ErrNoTarget is returned when cutting without a target mesh.
	ErrNoTarget = errors.New("please load a target mesh first")
	// ErrNoResult is returned when saving before a successful cut.
	ErrNoResult = errors.New("no result to save")
	// ErrNoCutPiece is returned when saving a cut piece that was not produced.
	ErrNoCutPiece = errors.New("no cut piece to save, execute a cut first")
	// ErrCutFailed wraps the engine diagnostic of a failed cut.
	ErrCutFailed = errors.New("boolean operation failed")
)

// Axis selects a cutter move direction
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter
func (a Axis) String() string {
	return [...]string{"X", "Y", "Z"}[a]
}

// CutReport describes a successful ExecuteCut
type CutReport struct {
	Elapsed     time.Duration
	Vertices    int
	Faces       int
	PieceFaces  int
	PieceFailed string // engine diagnostic when the cut piece could not be computed
}

// String formats the report for a dialog or terminal.
func (r CutReport) String() string {
	msg := fmt.Sprintf("Boolean operation completed in %.2f ms\nResult: %d vertices, %d faces",
		float64(r.Elapsed)/float64(time.Millisecond), r.Vertices, r.Faces)
	if r.PieceFailed != "" {
		msg += "\nCut piece unavailable: " + r.PieceFailed
	}
	return msg
}

// Session is the mutable editing state. It is not safe for concurrent use;
// callers keep it on one goroutine.
type Session struct {
	operator  *boolean.Operator
	generator *primitive.CylinderGenerator
	logger    *log.Logger
	initial   config.Box

	target     mesh.Mesh
	shown      mesh.Mesh // target as loaded, kept on screen across cuts
	targetPath string
	cutter     mesh.Mesh
	position   geometry.Vector3
	home       geometry.Vector3
	direction  geometry.Vector3
	step       float64
	result     *mesh.Mesh
	cutPiece   *mesh.Mesh
	selection  render.Selection
}

// New creates a session showing the configured initial box and cutter.
func New(cfg config.Config, engine boolean.Engine, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		operator:  boolean.NewOperator(engine),
		generator: primitive.NewCylinderGenerator(cfg.Cutter.CylinderParams),
		logger:    logger,
		initial:   cfg.Box,
		position:  clampPosition(cfg.Cutter.Position),
		home:      clampPosition(cfg.Cutter.Position),
		direction: cfg.Cutter.Direction,
		step:      lo.Clamp(cfg.MoveStep, MinStep, MaxStep),
		selection: render.SelectAll,
	}
	s.ResetTarget()
	s.updateCutter()
	return s
}

// ResetTarget replaces the target with the initial box and drops cut outputs.
func (s *Session) ResetTarget() {
	box := primitive.GenerateBox(s.initial.Center, s.initial.Size)
	s.SetTarget(box, "")
	s.logger.Printf("initial box at %s size %s", analysis.FormatVector(s.initial.Center), analysis.FormatVector(s.initial.Size))
}

// LoadTarget reads path as the new target.
func (s *Session) LoadTarget(path string) error {
	m, err := meshio.Load(path)
	if err != nil {
		return err
	}
	s.SetTarget(m, path)
	bb := m.BoundingBox()
	s.logger.Printf("loaded %s: %d vertices, %d faces, bounds %s..%s",
		path, m.VertexCount(), m.FaceCount(), analysis.FormatVector(bb.Min), analysis.FormatVector(bb.Max))
	return nil
}

// SetTarget replaces the target and clears the previous result and cut piece.
func (s *Session) SetTarget(m mesh.Mesh, path string) {
	s.target = m
	s.shown = m
	s.targetPath = path
	s.result = nil
	s.cutPiece = nil
}

// Target returns the mesh the next cut operates on. After a cut this is the
// latest result.
func (s *Session) Target() mesh.Mesh {
	return s.target
}

// TargetPath returns the file the target was loaded from, or "".
func (s *Session) TargetPath() string {
	return s.targetPath
}

// Cutter returns the positioned cutter.
func (s *Session) Cutter() mesh.Mesh {
	return s.cutter
}

// Result returns the latest cut result.
func (s *Session) Result() (mesh.Mesh, bool) {
	if s.result == nil {
		return mesh.Mesh{}, false
	}
	return *s.result, true
}

// CutPiece returns the material removed by the latest cut.
func (s *Session) CutPiece() (mesh.Mesh, bool) {
	if s.cutPiece == nil {
		return mesh.Mesh{}, false
	}
	return *s.cutPiece, true
}

// Selection returns the layers shown by the preview.
func (s *Session) Selection() render.Selection {
	return s.selection
}

// SetSelection changes the layers shown by the preview.
func (s *Session) SetSelection(sel render.Selection) {
	s.selection = sel
}

// Scene returns the meshes for the preview. The target layer is the mesh as
// loaded or reset; cuts only change the result layer. The pointers alias
// session state and are valid until the next mutation.
func (s *Session) Scene() render.Scene {
	return render.Scene{Target: &s.shown, Cutter: &s.cutter, Result: s.result}
}

// Position returns the cutter center.
func (s *Session) Position() geometry.Vector3 {
	return s.position
}

// SetPosition moves the cutter, clamping each coordinate to ±PositionLimit.
func (s *Session) SetPosition(p geometry.Vector3) {
	s.position = clampPosition(p)
	s.updateCutter()
}

// Move shifts the cutter by one step along axis; sign picks the direction.
func (s *Session) Move(axis Axis, sign int) {
	delta := s.step
	if sign < 0 {
		delta = -delta
	}
	p := s.position
	switch axis {
	case AxisX:
		p.X += delta
	case AxisY:
		p.Y += delta
	case AxisZ:
		p.Z += delta
	}
	s.SetPosition(p)
}

// Step returns the move step.
func (s *Session) Step() float64 {
	return s.step
}

// SetStep sets the move step, clamped to [MinStep, MaxStep].
func (s *Session) SetStep(step float64) {
	s.step = lo.Clamp(step, MinStep, MaxStep)
}

// Direction returns the cutter axis.
func (s *Session) Direction() geometry.Vector3 {
	return s.direction
}

// SetDirection re-aims the cutter.
func (s *Session) SetDirection(d geometry.Vector3) {
	s.direction = d
	s.updateCutter()
}

// CutterParams returns the cylinder dimensions.
func (s *Session) CutterParams() primitive.CylinderParams {
	return s.generator.Params()
}

// SetCutterParams changes the cylinder dimensions.
func (s *Session) SetCutterParams(p primitive.CylinderParams) {
	s.generator.SetParams(p)
	s.updateCutter()
}

// ResetCutter returns the cutter to its configured position.
func (s *Session) ResetCutter() {
	s.SetPosition(s.home)
}

func (s *Session) updateCutter() {
	s.cutter = s.generator.GenerateAt(s.position, s.direction)
}

// ExecuteCut subtracts the cutter from the target. On success the result
// replaces the target, the cut piece is computed from the pre-cut target and
// the preview switches to the result.
func (s *Session) ExecuteCut() (CutReport, error) {
	if s.target.IsEmpty() {
		return CutReport{}, ErrNoTarget
	}

	before := s.target
	res := s.operator.Difference(before, s.cutter)
	if !res.Succeeded {
		s.logger.Printf("cut failed after %.2f ms: %s", res.ElapsedMs(), res.Err)
		return CutReport{Elapsed: res.Elapsed}, fmt.Errorf("%w: %s", ErrCutFailed, res.Err)
	}

	result := res.Mesh
	result.Name = resultName(before.Name)
	s.target = result
	s.result = &result
	s.cutPiece = nil
	s.selection = render.SelectResult

	report := CutReport{
		Elapsed:  res.Elapsed,
		Vertices: result.VertexCount(),
		Faces:    result.FaceCount(),
	}

	piece := s.operator.CutPiece(before, s.cutter)
	if piece.Succeeded && !piece.Mesh.IsEmpty() {
		p := piece.Mesh
		p.Name = "cut_piece"
		s.cutPiece = &p
		report.PieceFaces = p.FaceCount()
	} else {
		report.PieceFailed = piece.Err
	}

	s.logger.Printf("cut done in %.2f ms: result %d vertices %d faces, piece %d faces",
		res.ElapsedMs(), report.Vertices, report.Faces, report.PieceFaces)
	return report, nil
}

func resultName(name string) string {
	switch {
	case name == "":
		return "result"
	case strings.HasSuffix(name, "_cut"):
		return name
	}
	return name + "_cut"
}

// SaveResult writes the latest result to path.
func (s *Session) SaveResult(path string) error {
	if s.result == nil || s.result.IsEmpty() {
		return ErrNoResult
	}
	if err := meshio.Save(path, *s.result); err != nil {
		return err
	}
	s.logger.Printf("result saved to %s", path)
	return nil
}

// SaveCutPiece writes the latest cut piece to path.
func (s *Session) SaveCutPiece(path string) error {
	if s.cutPiece == nil || s.cutPiece.IsEmpty() {
		return ErrNoCutPiece
	}
	if err := meshio.Save(path, *s.cutPiece); err != nil {
		return err
	}
	s.logger.Printf("cut piece saved to %s", path)
	return nil
}

// Info describes the target for the status panel.
func (s *Session) Info() string {
	if s.target.IsEmpty() {
		return "No mesh loaded"
	}
	file := s.targetPath
	if file == "" {
		file = "(initial box)"
	}
	size := s.target.BoundingBox().Size()
	return fmt.Sprintf("File: %s\nVertices: %d\nFaces: %d\nSize: %.2f x %.2f x %.2f mm",
		file, s.target.VertexCount(), s.target.FaceCount(), size.X, size.Y, size.Z)
}

func clampPosition(p geometry.Vector3) geometry.Vector3 {
	return geometry.NewVector3(
		lo.Clamp(p.X, -PositionLimit, PositionLimit),
		lo.Clamp(p.Y, -PositionLimit, PositionLimit),
		lo.Clamp(p.Z, -PositionLimit, PositionLimit),
	)
}
