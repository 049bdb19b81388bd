// Package app is the interactive cutting window: cutter controls on the left,
// the preview on the right.
package app

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/samber/lo"

	"github.com/meshcut/meshcut/internal/config"
	"github.com/meshcut/meshcut/internal/scene"
	"github.com/meshcut/meshcut/pkg/boolean"
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/meshio"
	"github.com/meshcut/meshcut/pkg/render"
	"github.com/meshcut/meshcut/pkg/viewer"
	"github.com/meshcut/meshcut/pkg/watcher"
)

// meshExtensions are the files offered by the open dialog.
var meshExtensions = []string{".stl", ".obj", ".ply", ".scad"}

// App is the main window state
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     config.Config
	logger  *log.Logger
	session *scene.Session
	preview *viewer.Preview
	watcher *watcher.FileWatcher

	info          *widget.Label
	position      [3]*widget.Entry
	step          *widget.Entry
	selection     *widget.Select
	cutButton     *widget.Button
	saveResult    *widget.Button
	savePiece     *widget.Button
	syncingWidget bool
}

// New creates the window on a fresh fyne application.
func New(cfg config.Config, engine boolean.Engine, logger *log.Logger) *App {
	return NewWithApp(fyneapp.NewWithID("io.meshcut.viewer"), cfg, engine, logger)
}

// NewWithApp creates the window on an existing fyne application.
func NewWithApp(fa fyne.App, cfg config.Config, engine boolean.Engine, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		fyneApp: fa,
		window:  fa.NewWindow("meshcut"),
		cfg:     cfg,
		logger:  logger,
		session: scene.New(cfg, engine, logger),
		preview: viewer.NewPreview(cfg.Render.Palette),
	}
	a.window.SetContent(a.buildUI())
	a.window.SetMainMenu(a.buildMenu())
	a.window.Resize(fyne.NewSize(float32(cfg.Render.Width)+320, float32(cfg.Render.Height)))
	a.window.SetOnClosed(a.stopWatching)
	a.refresh()
	return a
}

// Run loads path when given and blocks until the window closes.
func (a *App) Run(path string) {
	if path != "" {
		a.loadTarget(path)
	}
	a.window.ShowAndRun()
}

// Session returns the editing session behind the window.
func (a *App) Session() *scene.Session {
	return a.session
}

func (a *App) buildUI() fyne.CanvasObject {
	a.info = widget.NewLabel("")
	a.info.Wrapping = fyne.TextWrapWord

	params := a.session.CutterParams()
	cutterInfo := widget.NewLabel(fmt.Sprintf("Length: %.2f mm\nDiameter: %.2f mm\nSegments: %d",
		params.Length, params.Diameter, params.Segments))

	grid := container.NewGridWithColumns(4)
	for i, axis := range []scene.Axis{scene.AxisX, scene.AxisY, scene.AxisZ} {
		entry := widget.NewEntry()
		entry.OnSubmitted = func(string) { a.applyPosition() }
		a.position[i] = entry
		grid.Add(widget.NewLabel(axis.String() + ":"))
		grid.Add(entry)
		grid.Add(widget.NewButton("-"+axis.String(), func() { a.move(axis, -1) }))
		grid.Add(widget.NewButton("+"+axis.String(), func() { a.move(axis, 1) }))
	}

	a.step = widget.NewEntry()
	a.step.OnSubmitted = func(text string) {
		if v, err := parseFloat(text); err == nil {
			a.session.SetStep(v)
		}
		a.refresh()
	}

	names := lo.Map(render.Selections, func(s render.Selection, _ int) string { return s.String() })
	a.selection = widget.NewSelect(names, func(name string) {
		if a.syncingWidget {
			return
		}
		if sel, err := render.ParseSelection(name); err == nil {
			a.session.SetSelection(sel)
			a.refresh()
		}
	})

	a.cutButton = widget.NewButton("Execute Cut", a.executeCut)
	a.cutButton.Importance = widget.HighImportance
	a.saveResult = widget.NewButton("Save Result", func() { a.saveDialog("result.stl", a.session.SaveResult) })
	a.savePiece = widget.NewButton("Save Cut Piece", func() { a.saveDialog("cut_piece.stl", a.session.SaveCutPiece) })

	panel := container.NewVBox(
		widget.NewCard("Target", "", container.NewVBox(
			a.info,
			widget.NewButton("Load Mesh...", a.openDialog),
			widget.NewButton("Initial Box", func() {
				a.stopWatching()
				a.session.ResetTarget()
				a.refresh()
			}),
		)),
		widget.NewCard("Cutter", "", cutterInfo),
		widget.NewCard("Cutter Position", "", container.NewVBox(
			grid,
			container.NewBorder(nil, nil, widget.NewLabel("Step:"), nil, a.step),
			widget.NewButton("Reset Position", func() {
				a.session.ResetCutter()
				a.refresh()
			}),
		)),
		widget.NewCard("View", "", container.NewVBox(
			a.selection,
			widget.NewButton("Reset View", a.preview.ResetView),
		)),
		widget.NewCard("Actions", "", container.NewVBox(a.cutButton, a.saveResult, a.savePiece)),
	)

	left := container.NewVScroll(panel)
	left.SetMinSize(fyne.NewSize(300, 0))
	return container.NewBorder(nil, nil, left, nil, a.preview)
}

func (a *App) buildMenu() *fyne.MainMenu {
	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Load Mesh...", a.openDialog),
			fyne.NewMenuItem("Save Result...", func() { a.saveDialog("result.stl", a.session.SaveResult) }),
			fyne.NewMenuItem("Save Cut Piece...", func() { a.saveDialog("cut_piece.stl", a.session.SaveCutPiece) }),
		),
		fyne.NewMenu("View",
			fyne.NewMenuItem("Reset View", a.preview.ResetView),
		),
	)
}

// refresh pushes session state into the widgets.
func (a *App) refresh() {
	a.syncingWidget = true
	defer func() { a.syncingWidget = false }()

	a.preview.SetScene(a.session.Scene(), a.session.Selection())
	a.info.SetText(a.session.Info())

	p := a.session.Position()
	for i, v := range [3]float64{p.X, p.Y, p.Z} {
		a.position[i].SetText(formatFloat(v))
	}
	a.step.SetText(formatFloat(a.session.Step()))
	a.selection.SetSelected(a.session.Selection().String())

	if _, ok := a.session.Result(); ok {
		a.saveResult.Enable()
	} else {
		a.saveResult.Disable()
	}
	if _, ok := a.session.CutPiece(); ok {
		a.savePiece.Enable()
	} else {
		a.savePiece.Disable()
	}
	if a.session.Target().IsEmpty() {
		a.cutButton.Disable()
	} else {
		a.cutButton.Enable()
	}
}

func (a *App) move(axis scene.Axis, sign int) {
	a.session.Move(axis, sign)
	a.refresh()
}

func (a *App) applyPosition() {
	var c [3]float64
	for i, e := range a.position {
		v, err := parseFloat(e.Text)
		if err != nil {
			dialog.ShowError(fmt.Errorf("invalid coordinate %q", e.Text), a.window)
			a.refresh()
			return
		}
		c[i] = v
	}
	a.session.SetPosition(geometry.NewVector3(c[0], c[1], c[2]))
	a.refresh()
}

func (a *App) executeCut() {
	report, err := a.session.ExecuteCut()
	a.refresh()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	dialog.ShowInformation("Cut complete", report.String(), a.window)
}

func (a *App) openDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		a.loadTarget(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(meshExtensions))
	d.Show()
}

func (a *App) saveDialog(name string, save func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := save(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Saved", "Saved to "+path, a.window)
	}, a.window)
	d.SetFileName(name)
	d.Show()
}

func (a *App) loadTarget(path string) {
	if err := a.session.LoadTarget(path); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.refresh()
	if a.cfg.Watch {
		a.watch(path)
	}
}

// watch reloads the target whenever path or one of its includes changes.
func (a *App) watch(path string) {
	a.stopWatching()

	files, err := meshio.Dependencies(path)
	if err != nil {
		a.logger.Printf("not watching %s: %v", path, err)
		return
	}
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, func(changed string) {
		a.logger.Printf("%s changed, reloading", changed)
		fyne.Do(func() { a.reload(path) })
	}, a.logger)
	if err != nil {
		a.logger.Printf("not watching %s: %v", path, err)
		return
	}
	if err := fw.Watch(files...); err != nil {
		fw.Close()
		a.logger.Printf("not watching %s: %v", path, err)
		return
	}
	fw.Start()
	a.watcher = fw
	a.logger.Printf("watching %d file(s): %s", len(files), strings.Join(files, ", "))
}

func (a *App) reload(path string) {
	if a.session.TargetPath() != path {
		return
	}
	if err := a.session.LoadTarget(path); err != nil {
		a.logger.Printf("reload failed: %v", err)
		return
	}
	a.refresh()
}

func (a *App) stopWatching() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
