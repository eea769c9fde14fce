package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skel-tools/skel/internal/extractor"
	"github.com/skel-tools/skel/internal/watcher"
)

// watchCmd re-renders skeletons as watched files change.
var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch directories and re-extract skeletons on change",
	Long: `Watch performs an initial extraction over the given paths, then keeps
running: whenever a supported source file is created or modified, its
skeleton is re-extracted and printed. Renders of unchanged files are
served from an in-memory cache.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dispatcher := extractor.Default()
		useVerbose := verbose || viper.GetBool("verbose")

		cache, err := extractor.NewFileCache(dispatcher, 4096)
		if err != nil {
			return err
		}
		defer cache.Close()

		render := func(files []string) {
			sort.Strings(files)
			for _, file := range files {
				text, ok := cache.ExtractFile(file, useVerbose)
				if !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "no skeleton for %s\n", file)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				fmt.Fprintln(cmd.OutOrStdout())
			}
		}

		// initial pass over everything currently on disk
		files, err := collectFiles(args, nil)
		if err != nil {
			return err
		}
		render(files)

		var dirs []string
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.IsDir() {
				dirs = append(dirs, path)
			}
		}
		if len(dirs) == 0 {
			return nil
		}

		w, err := watcher.New(dirs, dispatcher.Supported)
		if err != nil {
			return err
		}
		defer w.Stop()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := w.Start(ctx, func(changed []string) {
			var existing []string
			for _, file := range changed {
				if _, err := os.Stat(file); err == nil {
					existing = append(existing, file)
				}
			}
			render(existing)
		}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "watching %d directories, Ctrl-C to stop\n", len(dirs))
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
