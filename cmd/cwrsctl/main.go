package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "cwrsctl",
	Short: "Operator tool for a running CWRS server",
	Long: `cwrsctl talks to a running CWRS server over HTTP.

Available subcommands:
  ask    - Send one message to the assistant endpoint
  health - Check the server and Firebase health endpoints`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "base URL of the CWRS server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	rootCmd.AddCommand(askCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
