package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skel-tools/skel/internal/extractor"
)

var includePattern string

// extractCmd renders skeletons for the given files or directory trees.
var extractCmd = &cobra.Command{
	Use:   "extract [paths...]",
	Short: "Extract code skeletons from source files",
	Long: `Extract parses each given file (or every supported file under a given
directory) and prints its structural skeleton. Files whose language is
unsupported or whose extraction fails are skipped with a warning on stderr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var include glob.Glob
		if includePattern != "" {
			compiled, err := glob.Compile(includePattern)
			if err != nil {
				return fmt.Errorf("invalid --include pattern %q: %w", includePattern, err)
			}
			include = compiled
		}

		files, err := collectFiles(args, include)
		if err != nil {
			return err
		}

		dispatcher := extractor.Default()
		useVerbose := verbose || viper.GetBool("verbose")
		printed := 0
		for _, file := range files {
			content, err := os.ReadFile(file)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", file, err)
				continue
			}
			text, ok := dispatcher.ExtractSkeleton(filepath.Base(file), string(content), useVerbose)
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no skeleton for %s\n", file)
				continue
			}
			if printed > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			printed++
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&includePattern, "include", "", "glob filtering files found under directories (e.g. '*.py')")
}

// collectFiles expands the argument list: plain files pass through, and
// directories are walked for supported files matching the include glob.
func collectFiles(paths []string, include glob.Glob) ([]string, error) {
	dispatcher := extractor.Default()
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			if !dispatcher.Supported(entry) {
				return nil
			}
			if include != nil && !include.Match(filepath.Base(entry)) {
				return nil
			}
			files = append(files, entry)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
