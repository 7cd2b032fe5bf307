package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gajzzs/usbprep/internal/app"
	"github.com/gajzzs/usbprep/internal/config"
	"github.com/gajzzs/usbprep/internal/ui"
)

var (
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool

	env = &app.Env{}
)

var rootCmd = &cobra.Command{
	Use:           "usbprep",
	Short:         "Inspect removable USB drives before preparing boot media",
	Long:          "usbprep lists removable USB drives, detects existing boot loaders and data, and guards device selection with an explicit confirmation",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		logger := ui.NewLogger(verbose, quiet, noColor)

		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		*env = *app.NewEnv(cfg, path, logger)
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(
		app.NewScanCommand(env),
		app.NewSelectCommand(env),
		app.NewStatusCommand(env),
		app.NewConfigCommand(env),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
