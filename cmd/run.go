package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runJSON bool

// runCmd executes a single aggregation run.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the aggregation pipeline once",
	Long: `Fetches regions, realms and auction house pricing, resolves item media, joins the
reference catalog and stores the aggregated snapshot. Exits non-zero if the run fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		return runOnce(ctx, rt, cmd)
	},
}

func runOnce(ctx context.Context, rt *services, cmd *cobra.Command) error {
	res, err := rt.pipeline().Run(ctx)
	if err != nil {
		return err
	}

	if runJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return nil
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the run summary as JSON")
	RootCmd.AddCommand(runCmd)
}
