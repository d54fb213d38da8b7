package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"swap_desk/internal/domain/entity"
)

var selectCmd = &cobra.Command{
	Use:   "select <source|destination> <token-name>",
	Short: "Bind a token to one side of the swap",
	Long: `Bind the named token to the source or destination side of the form.

Examples:
  swapctl select source USDC
  swapctl select destination LINK`,
	Args: cobra.ExactArgs(2),
	Run:  runSelect,
}

var invertCmd = &cobra.Command{
	Use:   "invert",
	Short: "Swap the source and destination tokens",
	Run:   runInvert,
}

var presetCmd = &cobra.Command{
	Use:   "preset <25|50|75|100>",
	Short: "Pick a percentage preset for the swap amount",
	Args:  cobra.ExactArgs(1),
	Run:   runPreset,
}

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(invertCmd)
	rootCmd.AddCommand(presetCmd)
}

func runSelect(cmd *cobra.Command, args []string) {
	client, err := newAPIClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var intent entity.SwapIntent
	body := map[string]string{"role": args[0], "name": args[1]}
	if err := client.post("/api/swap/select", body, &intent); err != nil {
		printError(err)
		os.Exit(1)
	}
	finishSwapCommand(cmd, intent)
}

func runInvert(cmd *cobra.Command, args []string) {
	client, err := newAPIClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var intent entity.SwapIntent
	if err := client.post("/api/swap/invert", nil, &intent); err != nil {
		printError(err)
		os.Exit(1)
	}
	finishSwapCommand(cmd, intent)
}

func runPreset(cmd *cobra.Command, args []string) {
	preset, err := strconv.Atoi(args[0])
	if err != nil {
		printError(fmt.Errorf("preset must be a number: %s", args[0]))
		os.Exit(1)
	}

	client, err := newAPIClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var intent entity.SwapIntent
	body := map[string]int{"preset": preset}
	if err := client.post("/api/swap/preset", body, &intent); err != nil {
		printError(err)
		os.Exit(1)
	}
	finishSwapCommand(cmd, intent)
}

func finishSwapCommand(cmd *cobra.Command, intent entity.SwapIntent) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		printJSON(intent)
		return
	}
	displaySwapState(intent)
}
