package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kurobon/gitviz/internal/config"
	"github.com/kurobon/gitviz/internal/git/commands"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "gitviz",
	Short:   "gitviz - an interactive git commit graph",
	Long:    `gitviz simulates commits, branches, merges and undo on an in-memory graph and renders it as SVG or text.`,
	Version: commands.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		config.Global = cfg
		return nil
	},
	// Bare gitviz serves.
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket server",
	RunE:  runServe,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Drive one local session from the terminal",
	Long: `Reads commands from stdin (git commit -m 'msg', git branch x, undo, ...)
and redraws the text graph after every command that changes it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), config.Global.SessionOptions())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $GITVIZ_CONFIG)")
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd, playCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
