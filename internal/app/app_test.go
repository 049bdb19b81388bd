package app

import (
	"errors"
	"io"
	"log"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/meshcut/meshcut/internal/config"
	"github.com/meshcut/meshcut/internal/scene"
	"github.com/meshcut/meshcut/pkg/boolean"
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
	"github.com/meshcut/meshcut/pkg/primitive"
	"github.com/meshcut/meshcut/pkg/render"
)

func boxEngine() boolean.Engine {
	return boolean.EngineFunc(func(a, b mesh.Mesh, kind boolean.Kind) (mesh.Mesh, error) {
		return primitive.GenerateBox(geometry.Vector3{}, geometry.NewVector3(3, 3, 3)), nil
	})
}

func newTestApp(t *testing.T, engine boolean.Engine) *App {
	t.Helper()
	fa := test.NewTempApp(t)
	a := NewWithApp(fa, config.Default(), engine, log.New(io.Discard, "", 0))
	t.Cleanup(a.window.Close)
	return a
}

func TestInitialState(t *testing.T) {
	a := newTestApp(t, boxEngine())

	if !a.saveResult.Disabled() || !a.savePiece.Disabled() {
		t.Error("save buttons should start disabled")
	}
	if a.cutButton.Disabled() {
		t.Error("cut button should be enabled for the initial box")
	}
	if a.selection.Selected != render.SelectAll.String() {
		t.Errorf("selection failed: expected %q, got %q", render.SelectAll.String(), a.selection.Selected)
	}
	if a.position[2].Text != "0.00" {
		t.Errorf("position failed: expected 0.00, got %q", a.position[2].Text)
	}
}

func TestMoveButtonsUpdateEntries(t *testing.T) {
	a := newTestApp(t, boxEngine())

	a.move(scene.AxisX, 1)
	a.move(scene.AxisX, 1)
	if a.position[0].Text != "2.00" {
		t.Errorf("move failed: expected 2.00, got %q", a.position[0].Text)
	}

	a.position[1].SetText("-7.5")
	a.applyPosition()
	if got := a.session.Position().Y; got != -7.5 {
		t.Errorf("apply position failed: expected -7.5, got %v", got)
	}
}

func TestExecuteCutEnablesSaving(t *testing.T) {
	a := newTestApp(t, boxEngine())

	test.Tap(a.cutButton)

	if a.saveResult.Disabled() || a.savePiece.Disabled() {
		t.Error("save buttons should be enabled after a cut")
	}
	if a.selection.Selected != render.SelectResult.String() {
		t.Errorf("selection failed: expected %q, got %q", render.SelectResult.String(), a.selection.Selected)
	}
}

func TestExecuteCutFailureKeepsTarget(t *testing.T) {
	failing := boolean.EngineFunc(func(a, b mesh.Mesh, kind boolean.Kind) (mesh.Mesh, error) {
		return mesh.Mesh{}, errors.New("no intersection")
	})
	a := newTestApp(t, failing)
	before := a.session.Target().FaceCount()

	test.Tap(a.cutButton)

	if !a.saveResult.Disabled() {
		t.Error("save result should stay disabled after a failed cut")
	}
	if a.session.Target().FaceCount() != before {
		t.Errorf("target changed after failed cut: %d -> %d", before, a.session.Target().FaceCount())
	}
}

func TestSelectionChangesSession(t *testing.T) {
	a := newTestApp(t, boxEngine())

	a.selection.SetSelected(render.SelectCutter.String())
	if a.session.Selection() != render.SelectCutter {
		t.Errorf("selection failed: expected Cutter, got %v", a.session.Selection())
	}
}
