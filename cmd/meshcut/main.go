package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshcut/meshcut/internal/config"
	"github.com/meshcut/meshcut/pkg/boolean/sdfxengine"
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/version"
)

var (
	configPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "meshcut",
	Short: "Cut cylindrical holes into triangle meshes",
	Long: `meshcut subtracts a cylindrical cutter from an STL, OBJ, PLY or OpenSCAD model.
It can run cuts from the command line, render previews to PNG or SVG,
and open an interactive window for placing the cutter.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Settings file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newLogger() *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "meshcut: ", log.LstdFlags)
}

func newEngine(cfg config.Config) *sdfxengine.Engine {
	return sdfxengine.New(sdfxengine.WithCells(cfg.Engine.Cells))
}

// parseVector reads "x,y,z".
func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// vectorFlag applies a changed "x,y,z" flag to dst.
func vectorFlag(cmd *cobra.Command, name string, dst *geometry.Vector3) {
	if !cmd.Flags().Changed(name) {
		return
	}
	s, _ := cmd.Flags().GetString(name)
	v, err := parseVector(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: --%s: %v\n", name, err)
		os.Exit(1)
	}
	*dst = v
}
