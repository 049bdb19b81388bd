package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshcut/meshcut/pkg/analysis"
	"github.com/meshcut/meshcut/pkg/mesh"
	"github.com/meshcut/meshcut/pkg/meshio"
	"github.com/meshcut/meshcut/pkg/primitive"
)

var primitiveOutput string

var primitiveCmd = &cobra.Command{
	Use:   "primitive",
	Short: "Generate primitive meshes",
}

var cylinderCmd = &cobra.Command{
	Use:   "cylinder",
	Short: "Write the configured cutter cylinder",
	Long:  "Generate a capped cylinder, aligned to --dir and centered on --at, and write it to a mesh file.",
	Args:  cobra.NoArgs,
	Run:   runCylinder,
}

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Write an axis-aligned box",
	Args:  cobra.NoArgs,
	Run:   runBox,
}

func init() {
	rootCmd.AddCommand(primitiveCmd)
	primitiveCmd.AddCommand(cylinderCmd, boxCmd)

	primitiveCmd.PersistentFlags().StringVarP(&primitiveOutput, "output", "o", "", "Output file (.stl or .obj)")
	_ = primitiveCmd.MarkPersistentFlagRequired("output")

	addCutterFlags(cylinderCmd)
	boxCmd.Flags().String("center", "", "Box center as x,y,z")
	boxCmd.Flags().String("size", "", "Box size as x,y,z")
}

func runCylinder(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	applyCutterFlags(cmd, &cfg)

	gen := primitive.NewCylinderGenerator(cfg.Cutter.CylinderParams)
	writePrimitive(gen.GenerateAt(cfg.Cutter.Position, cfg.Cutter.Direction))
}

func runBox(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	vectorFlag(cmd, "center", &cfg.Box.Center)
	vectorFlag(cmd, "size", &cfg.Box.Size)

	writePrimitive(primitive.GenerateBox(cfg.Box.Center, cfg.Box.Size))
}

func writePrimitive(m mesh.Mesh) {
	if err := meshio.Save(primitiveOutput, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", primitiveOutput, err)
		os.Exit(1)
	}
	fmt.Println(analysis.Summary(m))
	fmt.Printf("Saved to %s\n", primitiveOutput)
}
