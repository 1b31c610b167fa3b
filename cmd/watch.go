package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auto-reference/core/format"
	"auto-reference/feature/project"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchDryRun   bool
	watchDebounce int
)

// watchCmd re-syncs scenes as they are saved.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-sync scenes whenever they change on disk",
	Long: `Watches the scene directory and syncs each scene after it is written.
A change below the asset directory clears the asset cache and re-syncs every
persisted scene. Only directory scene sources can be watched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		repo, ok := rt.repo.(*project.DirRepository)
		if !ok {
			return errors.New("watch requires project.scene_source to be dir")
		}

		opts := project.WatchOptions{
			OnAssets: rt.catalog.Reset,
			OnBatch:  printWatchBatch(format.New(rt.cfg.Sync.FormatMessages), rt.logger),
			DryRun:   watchDryRun,
		}
		if watchDebounce > 0 {
			opts.Debounce = time.Duration(watchDebounce) * time.Millisecond
		}
		if rt.cfg.Project.AssetSource == project.SourceDir {
			opts.AssetsDir = rt.cfg.Project.AssetsDir
		}

		w, err := project.NewWatcher(rt.service, repo, opts, rt.logger)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		rt.logger.Info("Watching scenes", zap.String("dir", repo.Dir()), zap.String("assets", opts.AssetsDir))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		rt.logger.Info("Stopping watcher...")
		return w.Close()
	},
}

func printWatchBatch(f *format.Formatter, logg *zap.Logger) func(project.BatchResult, error) {
	return func(res project.BatchResult, err error) {
		if err != nil {
			logg.Warn("Watch batch failed", zap.String("kind", string(res.Kind)), zap.Error(err))
			return
		}
		for _, item := range res.Report.Items() {
			logg.Info(f.Item(item))
		}
		logg.Info(f.Summary(res.Report), zap.Strings("scenes", res.Scenes), zap.Strings("saved", res.Saved))
	}
}

func init() {
	watchCmd.Flags().BoolVar(&watchDryRun, "dry-run", false, "sync without saving modified scenes")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce-ms", 0, "milliseconds to wait for writes to settle")
	RootCmd.AddCommand(watchCmd)
}
