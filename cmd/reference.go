package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"auction-aggregator/core/upstream"
	"auction-aggregator/feature/auctions/reference"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// referenceCmd refreshes the stored reference catalog without running the pipeline.
var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Refresh the item reference catalog",
	Long:  `Downloads the item reference catalog and inserts items that are not stored yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		fetcher := reference.NewFetcher(upstream.NewClient(rt.cfg.Upstream), rt.cfg.Reference)
		items, err := reference.NewRefresher(fetcher, rt.store, rt.logger).Refresh(ctx)
		if err != nil {
			return err
		}

		rt.logger.Info("Reference catalog stored", zap.Int("items", len(items)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(referenceCmd)
}
