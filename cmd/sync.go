package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"auto-reference/core/autoref"
	"auto-reference/core/format"
	"auto-reference/core/utils"
	"auto-reference/feature/project"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncDryRun bool
	syncJSON   bool
	syncStrict bool
)

// syncCmd is the parent command for batch syncs.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Resolve annotated references of scenes",
	Long: `Runs auto-reference over a set of scenes and saves the scenes whose
components changed.

Examples:
  # Every persisted scene
  autoref sync persisted

  # Scenes listed in the manifest build, without saving
  autoref sync build --dry-run

  # One scene, as JSON
  autoref sync scene levels/Arena --json`,
}

var syncPersistedCmd = &cobra.Command{
	Use:   "persisted",
	Short: "Sync every persisted scene",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, func(svc *project.Service, opts project.Options) (project.BatchResult, error) {
			return svc.SyncPersisted(cmd.Context(), opts)
		})
	},
}

var syncBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Sync the scenes listed in the manifest build",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, func(svc *project.Service, opts project.Options) (project.BatchResult, error) {
			return svc.SyncBuild(cmd.Context(), opts)
		})
	},
}

var syncSceneCmd = &cobra.Command{
	Use:   "scene NAME",
	Short: "Sync a single scene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, func(svc *project.Service, opts project.Options) (project.BatchResult, error) {
			return svc.SyncScene(cmd.Context(), args[0], opts)
		})
	},
}

func runSync(cmd *cobra.Command, run func(*project.Service, project.Options) (project.BatchResult, error)) error {
	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	res, err := run(rt.service, project.Options{DryRun: syncDryRun})
	if err != nil {
		return err
	}

	if syncJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		printBatch(format.New(rt.cfg.Sync.FormatMessages), res)
	}

	rt.logger.Debug("Sync command finished", zap.Duration("duration", res.Duration))

	if syncStrict && res.Report.Status.Has(autoref.StatusError) {
		return fmt.Errorf("sync %s finished with %s", res.Kind, utils.FormatCount(res.Report.Statistics.Errors, "error"))
	}
	return nil
}

func printBatch(f *format.Formatter, res project.BatchResult) {
	fmt.Println(f.Report(res.Report))
	fmt.Println()
	fmt.Printf("Scenes: %s\n", utils.FormatCount(len(res.Scenes), "scene"))
	if res.DryRun {
		fmt.Println("Saved: none (dry run)")
	} else {
		fmt.Printf("Saved: %s\n", utils.FormatCount(len(res.Saved), "scene"))
		for _, name := range res.Saved {
			fmt.Printf("  %s\n", name)
		}
	}
	if len(res.Failed) > 0 {
		fmt.Printf("Failed: %s\n", utils.FormatCount(len(res.Failed), "scene"))
		names := make([]string, 0, len(res.Failed))
		for name := range res.Failed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, res.Failed[name])
		}
	}
	fmt.Printf("Execution Time: %s\n", res.Duration.Round(time.Millisecond))
}

func init() {
	syncCmd.PersistentFlags().BoolVar(&syncDryRun, "dry-run", false, "sync without saving modified scenes")
	syncCmd.PersistentFlags().BoolVar(&syncJSON, "json", false, "print the result as JSON")
	syncCmd.PersistentFlags().BoolVar(&syncStrict, "strict", false, "exit with an error when any diagnostic is an error")

	syncCmd.AddCommand(syncPersistedCmd, syncBuildCmd, syncSceneCmd)
	RootCmd.AddCommand(syncCmd)
}
