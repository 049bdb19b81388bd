package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshcut/meshcut/internal/scene"
	"github.com/meshcut/meshcut/pkg/boolean"
	"github.com/meshcut/meshcut/pkg/meshio"
)

var (
	cutOutput string
	cutPiece  string
	cutOp     string
)

var cutCmd = &cobra.Command{
	Use:   "cut [file]",
	Short: "Subtract the cutter from a model",
	Long: `Cut a cylindrical hole into a model and write the result.
Without a file the initial 20 x 20 x 25 mm box is cut. With --op union or
--op intersection the model and cutter are combined with that operation instead.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().StringVarP(&cutOutput, "output", "o", "result.stl", "Result file (.stl or .obj)")
	cutCmd.Flags().StringVar(&cutPiece, "piece", "", "Also write the removed material to this file")
	cutCmd.Flags().StringVar(&cutOp, "op", "difference", "Operation: difference, union or intersection")
	addCutterFlags(cutCmd)
}

func runCut(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	applyCutterFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kind, err := boolean.ParseKind(cutOp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := newEngine(cfg)
	session := scene.New(cfg, engine, newLogger())
	if len(args) == 1 {
		if err := session.LoadTarget(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(session.Info())

	if kind != boolean.Difference {
		res := boolean.NewOperator(engine).Execute(session.Target(), session.Cutter(), kind)
		if !res.Succeeded {
			fmt.Fprintf(os.Stderr, "Error: %s failed: %s\n", kind, res.Err)
			os.Exit(1)
		}
		if err := meshio.Save(cutOutput, res.Mesh); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s done in %.2f ms: %d vertices, %d faces\n",
			kind, res.ElapsedMs(), res.Mesh.VertexCount(), res.Mesh.FaceCount())
		fmt.Printf("Saved to %s\n", cutOutput)
		return
	}

	report, err := session.ExecuteCut()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(report)

	if err := session.SaveResult(cutOutput); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved result to %s\n", cutOutput)

	if cutPiece != "" {
		if err := session.SaveCutPiece(cutPiece); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving cut piece: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved cut piece to %s\n", cutPiece)
	}
}
