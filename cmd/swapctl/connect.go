package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap_desk/internal/domain/entity"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the server-side wallet and fetch balances",
	Run:   runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newAPIClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	s := newSpinner("Connecting wallet...", !jsonOutput)
	var result struct {
		Address string            `json:"address"`
		Swap    entity.SwapIntent `json:"swap"`
	}
	err = client.post("/api/wallet/connect", nil, &result)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(result)
		return
	}
	printSuccess(fmt.Sprintf("Wallet connected: %s", color.CyanString(result.Address)))
	displaySwapState(result.Swap)
}
