package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ethernal-Tech/cardano-guardian/config"
	"github.com/spf13/cobra"
)

const programName = "cardano-guardian"

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Cardano guardian bridge helper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to the yaml config file")

	rootCmd.AddCommand(scanCommand())
	rootCmd.AddCommand(buildScriptsCommand())
	rootCmd.AddCommand(keygenCommand())
	rootCmd.AddCommand(pendingCommand())
	rootCmd.AddCommand(markProcessedCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		stop()
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(configFile)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
