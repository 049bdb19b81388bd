package main

import (
	"github.com/spf13/cobra"

	"github.com/meshcut/meshcut/internal/app"
)

var viewNoWatch bool

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open the interactive cutting window",
	Long: `Open a window showing the target and cutter. Drag to rotate, scroll to zoom,
use the arrow keys to pan and Home to reset the view. STL, OBJ, PLY and
OpenSCAD files are reloaded when they change on disk.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "Do not reload the model when it changes")
	addCutterFlags(viewCmd)
}

func runView(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	applyCutterFlags(cmd, &cfg)
	if viewNoWatch {
		cfg.Watch = false
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	app.New(cfg, newEngine(cfg), newLogger()).Run(path)
}
