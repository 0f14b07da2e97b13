package main

import (
	"fmt"
	"os"
	"time"

	"github.com/eolymp/go-ss"
	"github.com/eolymp/go-ss/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
	log zerolog.Logger

	// fsys is the file system every command reads and writes
	fsys = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "ssc",
	Short: "ssc compiles SS documents into HTML pages and LaTeX",
	Long: `ssc compiles SS documents into HTML pages and LaTeX.

Configuration:
  Settings are read from ss.toml in the working directory, or from the file
  given with --config. Any setting can be overridden with an SS_ environment
  variable, for example SS_PROJECT_OUTPUT=public.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(fsys, cfgFile); err != nil {
			return err
		}

		level := cfg.LogLevel()
		if verbose {
			level = zerolog.DebugLevel
		}

		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().
			Timestamp().
			Logger()

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(latexCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// compiler creates a compiler reading from fs, a fresh one for each run so the include cache is never stale
func compiler(fs afero.Fs) *ss.Compiler {
	return ss.NewCompiler(fs, ss.WithLogger(log), ss.WithDecoder(".svg", ss.SVG))
}

// layout reads page template configured for the project
func layout() (ss.Layout, error) {
	l := ss.Layout{Styles: cfg.HTML.Styles, Scripts: cfg.HTML.Scripts}
	if cfg.HTML.Layout == "" {
		return l, nil
	}

	data, err := afero.ReadFile(fsys, cfg.HTML.Layout)
	if err != nil {
		return l, fmt.Errorf("unable to read layout: %w", err)
	}

	l.Template = string(data)
	return l, nil
}
