package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap_desk/internal/domain/entity"
)

var routeAmount string

var routeCmd = &cobra.Command{
	Use:     "route",
	Aliases: []string{"aggregate"},
	Short:   "Request an aggregation route for the current pair",
	Long: `Request a route from the aggregation backend for the currently
selected pair. With --amount the given value is swapped; otherwise the
selected preset percentage of the source balance applies.

Examples:
  swapctl route --amount 1.5
  swapctl preset 50 && swapctl route`,
	Run: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVar(&routeAmount, "amount", "", "Explicit amount of the source token to swap")
}

func runRoute(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newAPIClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var body interface{}
	if routeAmount != "" {
		body = map[string]string{"amount": routeAmount}
	}

	s := newSpinner("Requesting route...", !jsonOutput)
	var result struct {
		Route entity.RouteResult `json:"route"`
	}
	err = client.post("/api/aggregate", body, &result)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(result.Route)
		return
	}
	displayRoute(result.Route)
}

func displayRoute(route entity.RouteResult) {
	switch route.Kind {
	case entity.RouteEmpty:
		fmt.Println()
		color.Yellow("The aggregator found no route for this pair.")
		fmt.Println()
	case entity.RouteLegs:
		printSuccess(fmt.Sprintf("Route found with %d legs:", len(route.Legs)))
		for _, leg := range route.Legs {
			fmt.Printf("  %s  %s\n", color.HiBlackString(leg.Address), leg.Amount)
		}
		fmt.Println()
	default:
		fmt.Println("\nNo route data returned.")
	}
}
