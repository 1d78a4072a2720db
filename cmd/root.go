package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vventirozos/GhostAgent-v2/pkg/config"
	"github.com/vventirozos/GhostAgent-v2/pkg/headless"
	"github.com/vventirozos/GhostAgent-v2/pkg/logger"
	"github.com/vventirozos/GhostAgent-v2/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ghost",
	Short: "Terminal client for the GhostAgent backend",
	Long: `Chat with a GhostAgent backend from the terminal. The agent's
operational state is mirrored by a live animated indicator that reacts
to the backend's log event stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		if err := logger.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}

		if viper.GetBool("headless") {
			return runHeadless()
		}
		return tui.StartApp()
	},
	SilenceUsage: true,
}

func runHeadless() error {
	prompt := viper.GetString("prompt")
	if prompt == "" {
		return fmt.Errorf("headless mode requires --prompt")
	}

	runner := headless.NewRunner(os.Stdout)
	if _, err := runner.Run(context.Background(), prompt); err != nil {
		return err
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./ghost.yaml or ~/.ghost/ghost.yaml)")

	rootCmd.PersistentFlags().StringP("engine", "e", "graph", "animation engine: graph or surface")
	viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))

	rootCmd.PersistentFlags().StringP("model", "m", "", "model name sent with chat requests")
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "execute a single prompt without entering the TUI")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))

	rootCmd.PersistentFlags().BoolP("headless", "H", false, "run without TUI (requires --prompt)")
	viper.BindPFlag("headless", rootCmd.PersistentFlags().Lookup("headless"))
}
