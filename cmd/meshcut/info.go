package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshcut/meshcut/pkg/analysis"
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/meshio"
)

var infoEdges int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show dimensions, vertex and face counts, volume, surface area, edge statistics and whether the mesh is closed.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoEdges, "edges", "n", 0, "List the n longest and shortest edges")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	m, err := meshio.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	result := analysis.Analyze(m)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if result.Name != "" {
		fmt.Printf("Name: %s\n", result.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh:")
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Faces: %d\n", result.FaceCount)
	fmt.Printf("  Edges: %d\n", len(result.Edges))
	fmt.Printf("  Closed: %t\n", result.Closed())
	if !result.Closed() {
		fmt.Printf("  Boundary edges: %d\n", result.BoundaryEdges)
		fmt.Printf("  Non-manifold edges: %d\n", result.NonManifoldEdges)
	}
	fmt.Printf("  Surface Area: %s\n\n", analysis.FormatMeasurement(result.SurfaceArea, "mm²"))

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions.X, "mm"))
	fmt.Printf("  Depth (Y): %s\n", analysis.FormatMeasurement(result.Dimensions.Y, "mm"))
	fmt.Printf("  Height (Z): %s\n", analysis.FormatMeasurement(result.Dimensions.Z, "mm"))
	fmt.Printf("  Diagonal: %s\n", analysis.FormatMeasurement(result.BoundingBox.Diagonal(), "mm"))
	fmt.Printf("  Volume: %s\n", analysis.FormatMeasurement(result.Volume, "mm³"))
	fmt.Printf("  Box Volume: %s\n\n", analysis.FormatMeasurement(result.BoxVolume, "mm³"))

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, "mm"))
	fmt.Printf("  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, "mm"))
	fmt.Printf("  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, "mm"))

	if infoEdges > 0 {
		printEdges(fmt.Sprintf("Top %d Longest Edges", infoEdges), m.Vertices, analysis.FindLongestEdges(result, infoEdges))
		printEdges(fmt.Sprintf("Top %d Shortest Edges", infoEdges), m.Vertices, analysis.FindShortestEdges(result, infoEdges))
	}
}

func printEdges(title string, vertices []geometry.Vector3, edges []analysis.Edge) {
	fmt.Printf("\n%s\n", title)
	fmt.Printf("%-6s %-35s %-35s %-15s %s\n", "Index", "Start", "End", "Length", "Faces")
	for i, e := range edges {
		fmt.Printf("%-6d %-35s %-35s %-15.6f %d\n", i+1,
			analysis.FormatVector(vertices[e.A]), analysis.FormatVector(vertices[e.B]), e.Length, e.Faces)
	}
}
