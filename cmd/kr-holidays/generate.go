package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/g-rebels/kr-holiday/internal/generator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func generateCmd() *cobra.Command {
	var (
		years     []int
		outputDir string
		gzip      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch holidays from the public data portal and write year files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := cfg.Generator
			if cmd.Flags().Changed("years") {
				gc.Years = years
			}
			if cmd.Flags().Changed("output") {
				gc.OutputDir = outputDir
			}
			if cmd.Flags().Changed("gzip") {
				gc.Gzip = gzip
			}

			if gc.ServiceKey == "" {
				logger.Warn("generator.service_key is empty, every year will be written as placeholder data")
			}

			client := generator.NewClient(generator.ClientConfig{
				APIURL:     gc.APIURL,
				ServiceKey: gc.ServiceKey,
				Rows:       gc.Rows,
				Timeout:    gc.GetTimeout(),
				Retries:    gc.Retries,
			}, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			targetYears := gc.GetYears()
			logger.Info("Starting generation",
				zap.Ints("years", targetYears),
				zap.String("output_dir", gc.OutputDir),
				zap.Bool("gzip", gc.Gzip))

			summary := generator.New(client, gc.OutputDir, gc.Gzip, logger).Run(ctx, targetYears)

			out := cmd.OutOrStdout()
			for _, res := range summary.Results {
				if res.Err != nil {
					fmt.Fprintf(out, "❌ %d: %v\n", res.Year, res.Err)
					continue
				}
				fmt.Fprintf(out, "✅ %d: %s (%s, %d holidays, %d working days)\n",
					res.Year, res.Path, res.Source, res.Statistics.HolidayDays, res.Statistics.WorkingDays)
			}
			fmt.Fprintf(out, "Written %d/%d, placeholder %d\n", summary.Written, len(targetYears), summary.Fallbacks)

			if summary.Failed > 0 {
				return fmt.Errorf("%d year file(s) could not be written", summary.Failed)
			}
			return ctx.Err()
		},
	}

	cmd.Flags().IntSliceVar(&years, "years", nil, "Years to generate (default: generator.years or 2010-2040)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default: generator.output_dir)")
	cmd.Flags().BoolVar(&gzip, "gzip", false, "Write gzip-compressed .json.gz files")

	return cmd
}
