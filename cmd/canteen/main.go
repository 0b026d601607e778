// Package main provides the canteen CLI and the kiosk API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

// Global flag values.
var (
	flagConfig  string
	flagOutput  string
	flagNoColor bool
	flagVerbose bool
)

// current is the wired application, built by PersistentPreRunE
var current *app

var rootCmd = &cobra.Command{
	Use:           "canteen",
	Short:         "Order from the campus canteen",
	Long:          `canteen browses the canteen menu, keeps your cart, places and tracks orders, and runs the admin order board.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		if err := validOutput(flagOutput); err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), appOptions{
			configPath: flagConfig,
			out:        cmd.OutOrStdout(),
			noColor:    flagNoColor,
			verbose:    flagVerbose,
			serving:    cmd.Name() == "serve",
		})
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		err := current.Close()
		current = nil
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "canteen", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./config.toml or ~/.canteen/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", outputTable, "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
