package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/meshcut/meshcut/internal/scene"
	"github.com/meshcut/meshcut/pkg/render"
	"github.com/meshcut/meshcut/pkg/render/raster"
	"github.com/meshcut/meshcut/pkg/render/svgsurface"
)

var (
	renderOutput    string
	renderSelection string
	renderPitch     float64
	renderYaw       float64
	renderZoom      float64
	renderWidth     int
	renderHeight    int
	renderCut       bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render the scene to a PNG or SVG image",
	Long: `Draw the target, cutter and result with the same projection as the
interactive viewer. The output format follows the file extension.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "preview.png", "Image file (.png or .svg)")
	renderCmd.Flags().StringVarP(&renderSelection, "select", "s", "all", "Meshes to draw: all, target, cutter or result")
	renderCmd.Flags().Float64Var(&renderPitch, "pitch", 0, "Rotation about the X axis in radians")
	renderCmd.Flags().Float64Var(&renderYaw, "yaw", 0, "Rotation about the Y axis in radians")
	renderCmd.Flags().Float64Var(&renderZoom, "zoom", 1, "Zoom factor")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width (default from config)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height (default from config)")
	renderCmd.Flags().BoolVar(&renderCut, "cut", false, "Execute the cut before rendering")
	addCutterFlags(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	applyCutterFlags(cmd, &cfg)
	if renderWidth > 0 {
		cfg.Render.Width = renderWidth
	}
	if renderHeight > 0 {
		cfg.Render.Height = renderHeight
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sel, err := render.ParseSelection(renderSelection)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := scene.New(cfg, newEngine(cfg), newLogger())
	if len(args) == 1 {
		if err := session.LoadTarget(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
			os.Exit(1)
		}
	}
	if renderCut {
		report, err := session.ExecuteCut()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(report)
	}

	cam := render.NewCamera()
	cam.Pitch = renderPitch
	cam.Yaw = renderYaw
	cam.Scale = lo.Clamp(renderZoom, render.MinScale, render.MaxScale)

	vp := render.Viewport{Width: float64(cfg.Render.Width), Height: float64(cfg.Render.Height)}
	frame := render.BuildFrame(session.Scene(), cam, sel, vp, cfg.Render.Palette)

	if err := writeImage(renderOutput, frame, cfg.Render.Palette.Background); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", renderOutput, err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %d faces to %s\n", len(frame.Polygons), renderOutput)
}

func writeImage(path string, frame render.Frame, background color.Color) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		svgsurface.Render(f, frame, background)
		return f.Close()
	case ".png":
		return raster.Render(frame, background).SavePNG(path)
	default:
		return fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}
}
