package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidsponential/website/internal/db"
	"github.com/vidsponential/website/internal/manifest"
)

var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "Inspect recorded static exports",
}

var buildsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded builds, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openManifest()
		if err != nil {
			return err
		}
		defer closeDB()

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		builds, err := store.List(cmd.Context(), manifest.ListFilter{
			Status: manifest.Status(status),
			Limit:  limit,
		})
		if err != nil {
			return err
		}
		if len(builds) == 0 {
			fmt.Println("No builds recorded. Run `vidsite build` to export the site.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tPAGES\tASSETS\tDURATION\tOUTPUT")
		for _, b := range builds {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				shortID(b.ID),
				b.StartedAt.Local().Format("2006-01-02 15:04:05"),
				b.Status,
				b.PageCount,
				b.AssetCount,
				b.Duration().Round(time.Millisecond),
				b.OutputDir,
			)
		}
		return w.Flush()
	},
}

var buildsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one build and the pages it wrote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openManifest()
		if err != nil {
			return err
		}
		defer closeDB()

		b, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Build:    %s\n", b.ID)
		fmt.Printf("Status:   %s\n", b.Status)
		fmt.Printf("Started:  %s\n", b.StartedAt.Local().Format(time.RFC3339))
		fmt.Printf("Duration: %s\n", b.Duration().Round(time.Millisecond))
		fmt.Printf("Output:   %s\n", b.OutputDir)
		fmt.Printf("Data API: %s\n", b.DataAPIURL)
		if b.Error != "" {
			fmt.Printf("Error:    %s\n", b.Error)
		}
		if len(b.Pages) == 0 {
			return nil
		}

		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tSTATUS\tBYTES")
		for _, p := range b.Pages {
			fmt.Fprintf(w, "%s\t%d\t%d\n", p.Path, p.StatusCode, p.Bytes)
		}
		return w.Flush()
	},
}

var buildsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete builds older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		if olderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}

		store, closeDB, err := openManifest()
		if err != nil {
			return err
		}
		defer closeDB()

		n, err := store.DeleteBefore(cmd.Context(), time.Now().Add(-olderThan))
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d builds\n", n)
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openManifest() (*manifest.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return manifest.NewStore(database), func() { database.Close() }, nil
}

func init() {
	buildsListCmd.Flags().String("status", "", "only show builds with this status (succeeded, failed)")
	buildsListCmd.Flags().Int("limit", 20, "maximum number of builds to show")
	buildsPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "delete builds started before this age")

	buildsCmd.AddCommand(buildsListCmd, buildsShowCmd, buildsPruneCmd)
	rootCmd.AddCommand(buildsCmd)
}
