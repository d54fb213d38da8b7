package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap_desk/internal/domain/entity"
)

var searchTerm string

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List the tokens available on the swap form",
	Long: `List the tokens the swap form offers, optionally narrowed by a
case-insensitive name search.

Examples:
  swapctl tokens
  swapctl tokens --search us`,
	Run: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&searchTerm, "search", "", "Filter tokens by name substring")
}

func runTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newAPIClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	path := "/api/tokens"
	if searchTerm != "" {
		path += "?search=" + url.QueryEscape(searchTerm)
	}

	s := newSpinner("Fetching tokens...", !jsonOutput)
	var result struct {
		Tokens []entity.Token `json:"tokens"`
	}
	err = client.get(path, &result)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(result.Tokens)
		return
	}
	displayTokens(result.Tokens)
}

func displayTokens(tokens []entity.Token) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        AVAILABLE TOKENS")
	fmt.Println(strings.Repeat("=", 70))

	for _, token := range tokens {
		address := token.Address
		if len(address) > 42 {
			address = address[:39] + "..."
		}
		line := fmt.Sprintf("  %-8s  %s", color.YellowString(token.Name), color.HiBlackString(address))
		if token.Balance != "" {
			line += fmt.Sprintf("  balance %s", token.Balance)
		}
		if token.PriceUSD > 0 {
			line += fmt.Sprintf("  $%.4f", token.PriceUSD)
		}
		fmt.Println(line)
	}

	fmt.Printf("\nTotal: %d tokens\n\n", len(tokens))
}

func newSpinner(suffix string, show bool) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if show {
		s.Suffix = " " + suffix
		s.Start()
	}
	return s
}
