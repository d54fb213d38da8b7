package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap_desk/internal/domain/entity"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the service status and current swap state",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newAPIClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var intent entity.SwapIntent
	if err := client.get("/api/swap", &intent); err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(intent)
		return
	}
	displaySwapState(intent)
}

func displaySwapState(intent entity.SwapIntent) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                      SWAP STATE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("  From: %s\n", formatToken(intent.Source))
	fmt.Printf("  To:   %s\n", formatToken(intent.Destination))

	if intent.Preset != entity.PresetNone {
		fmt.Printf("  Preset: %d%% of balance\n", intent.Preset)
	}
	if intent.WalletAddress != "" {
		fmt.Printf("  Wallet: %s\n", color.CyanString(intent.WalletAddress))
	} else {
		fmt.Printf("  Wallet: %s\n", color.HiBlackString("not connected"))
	}

	switch intent.Route.Kind {
	case entity.RouteNone:
		fmt.Printf("  Route: %s\n", color.HiBlackString("not requested"))
	case entity.RouteEmpty:
		fmt.Printf("  Route: %s\n", color.YellowString("no route available"))
	case entity.RouteLegs:
		fmt.Printf("  Route: %d legs\n", len(intent.Route.Legs))
		for _, leg := range intent.Route.Legs {
			fmt.Printf("    %s  %s\n", color.HiBlackString(leg.Address), leg.Amount)
		}
	}
	if intent.InRoute {
		color.Yellow("  Aggregation in progress...")
	}
	fmt.Println(strings.Repeat("=", 60) + "\n")
}

func formatToken(t entity.Token) string {
	s := color.YellowString(t.Name)
	if t.Balance != "" {
		s += fmt.Sprintf("  balance %s", t.Balance)
	}
	if t.PriceUSD > 0 {
		s += fmt.Sprintf("  ($%.2f)", t.PriceUSD)
	}
	return s
}

func printJSON(v interface{}) {
	data, _ := ctlJSON.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
