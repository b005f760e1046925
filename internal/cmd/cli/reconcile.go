package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rzbill/sift/pkg/batch"
)

// NewReconcileCommand runs one reconciliation pass over a candidate batch
// read from a JSON file (an array of row objects) and prints the filtered
// batch.
func NewReconcileCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Filter a candidate batch against the sink's published tail",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")

			rt, _, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			rec, err := rt.NewReconciler(nil)
			if err != nil {
				return err
			}

			in, err := readBatch(input)
			if err != nil {
				return fmt.Errorf("read candidate batch: %w", err)
			}
			out, err := rec.Reconcile(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeBatch(output, out)
		},
	}
	AddCommonFlags(cmd)
	cmd.Flags().String("input", "-", "Candidate batch JSON file ('-' for stdin)")
	cmd.Flags().String("output", "-", "Filtered batch destination ('-' for stdout)")
	return cmd
}

func readBatch(path string) (batch.Batch, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var b batch.Batch
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, err
	}
	return b, nil
}

func writeBatch(path string, b batch.Batch) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
