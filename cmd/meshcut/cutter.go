package main

import (
	"github.com/spf13/cobra"

	"github.com/meshcut/meshcut/internal/config"
)

// addCutterFlags registers the flags that place and size the cutter.
func addCutterFlags(cmd *cobra.Command) {
	cmd.Flags().String("at", "", "Cutter position as x,y,z")
	cmd.Flags().String("dir", "", "Cutter axis direction as x,y,z")
	cmd.Flags().Float64("length", 0, "Cutter length in mm")
	cmd.Flags().Float64("diameter", 0, "Cutter diameter in mm")
	cmd.Flags().Int("segments", 0, "Cutter segment count")
	cmd.Flags().Int("cells", 0, "Engine grid resolution along the longest axis")
}

// applyCutterFlags copies changed cutter flags over cfg.
func applyCutterFlags(cmd *cobra.Command, cfg *config.Config) {
	vectorFlag(cmd, "at", &cfg.Cutter.Position)
	vectorFlag(cmd, "dir", &cfg.Cutter.Direction)
	if cmd.Flags().Changed("length") {
		cfg.Cutter.Length, _ = cmd.Flags().GetFloat64("length")
	}
	if cmd.Flags().Changed("diameter") {
		cfg.Cutter.Diameter, _ = cmd.Flags().GetFloat64("diameter")
	}
	if cmd.Flags().Changed("segments") {
		cfg.Cutter.Segments, _ = cmd.Flags().GetInt("segments")
	}
	if cmd.Flags().Changed("cells") {
		cfg.Engine.Cells, _ = cmd.Flags().GetInt("cells")
	}
}
