package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecotrace/wastewatch/internal/progress"
	"github.com/ecotrace/wastewatch/internal/seed"
)

var (
	seedDir     string
	seedPattern string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture data into the database",
	Long:  `Loads JSON fixture files (facilities, shipments, inspections, contaminants, waste types) into the configured SQLite database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir := cfg.FixturesDir
		if seedDir != "" {
			dir = seedDir
		}

		database, st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		loader := seed.New(st, progress.NewReporter())
		summary, err := loader.LoadDir(context.Background(), dir, seedPattern)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Loaded %d records from %d files into %s\n",
			summary.Total(), summary.Files, cfg.DatabasePath())
		if verbose {
			fmt.Fprintf(os.Stderr, "  Facilities: %d\n", summary.Facilities)
			fmt.Fprintf(os.Stderr, "  Waste types: %d\n", summary.WasteTypes)
			fmt.Fprintf(os.Stderr, "  Shipments: %d\n", summary.Shipments)
			fmt.Fprintf(os.Stderr, "  Inspections: %d\n", summary.Inspections)
			fmt.Fprintf(os.Stderr, "  Contaminants: %d\n", summary.Contaminants)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "Fixture directory (overrides fixtures_dir from config)")
	seedCmd.Flags().StringVar(&seedPattern, "pattern", seed.DefaultPattern, "Glob pattern for fixture files, relative to the fixture directory")
	rootCmd.AddCommand(seedCmd)
}
