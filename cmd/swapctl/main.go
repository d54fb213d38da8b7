package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swapctl",
	Short: "A CLI for driving the swap_desk service",
	Long: `swapctl is a command-line companion to the swap_desk server. It talks to
the REST API to inspect the swap form, pick tokens, connect the wallet
and request aggregation routes.

Examples:
  swapctl status
  swapctl tokens --search us
  swapctl select source USDC
  swapctl connect
  swapctl route --amount 1.5`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("base-url", "", "swap_desk base URL (overrides config)")
	rootCmd.PersistentFlags().String("api-key", "", "API key for the X-API-Key header")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
