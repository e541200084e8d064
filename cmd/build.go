package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidsponential/website/internal/db"
	"github.com/vidsponential/website/internal/export"
	"github.com/vidsponential/website/internal/manifest"
	"github.com/vidsponential/website/internal/progress"
	"github.com/vidsponential/website/internal/web"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site to static files",
	Long: `Renders every page, including one pre-filtered portfolio page per niche,
into the output directory, copies the shared assets, and records the build in
the manifest database.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("no-record", false, "do not record the build in the manifest database")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	logger := newLogger()

	site, _, err := newSite(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Building Vidsponential site...")
	started := time.Now().UTC()

	paths := site.ExportPaths(ctx)
	exporter := &export.Exporter{
		Handler:   site.Handler(),
		OutputDir: cfg.OutputDir,
		StaticFS:  web.StaticFS(),
		Reporter:  progress.NewReporter(),
		Logger:    logger,
	}
	res, exportErr := exporter.Export(ctx, paths, export.AssetConfig{
		RootDir: cfg.AssetsDir,
		Include: cfg.AssetInclude,
	})

	build := &manifest.Build{
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		OutputDir:  cfg.OutputDir,
		DataAPIURL: cfg.DataAPIURL,
		Status:     manifest.StatusSucceeded,
	}
	if exportErr != nil {
		build.Status = manifest.StatusFailed
		build.Error = exportErr.Error()
	} else {
		build.Pages = res.Pages
		build.AssetCount = res.Assets
	}

	if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
		if err := recordBuild(cmd.Context(), cfg.DBPath, build); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record build: %v\n", err)
		}
	}

	if exportErr != nil {
		return fmt.Errorf("exporting site: %w", exportErr)
	}

	written := 0
	fmt.Println("Pages written:")
	for _, p := range res.Pages {
		if p.StatusCode == http.StatusOK {
			written++
			fmt.Printf("  %s (%d bytes)\n", p.Path, p.Bytes)
		}
	}
	fmt.Printf("Build completed: %s (%d pages, %d assets, %d warnings) in %s\n",
		cfg.OutputDir, written, res.Assets, len(res.Warnings),
		build.Duration().Round(time.Millisecond))
	return nil
}

func recordBuild(ctx context.Context, dbPath string, b *manifest.Build) error {
	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := manifest.NewStore(database).Record(ctx, b); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Recorded build %s\n", b.ID)
	}
	return nil
}
