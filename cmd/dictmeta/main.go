// Command dictmeta maintains the metadata of the dictionary entries:
// etymology, pronunciation, audio and cross-references.
//
// Exit codes: 0 = success, 1 = error or single word not updated.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictmeta/internal/app"
	"github.com/heartmarshall/dictmeta/internal/config"
	"github.com/heartmarshall/dictmeta/pkg/ctxutil"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "dictmeta",
	Short:         "Maintain dictionary entry metadata from Wiktionary",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = app.BuildVersion()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(etymologyCmd)
	rootCmd.AddCommand(pronunciationCmd)
	rootCmd.AddCommand(cleanupAudioCmd)
	rootCmd.AddCommand(migrateSeeAlsoCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// withApp loads the configuration, wires the application and runs fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	ctx := ctxutil.WithCommand(cmd.Context(), cmd.Name())
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
