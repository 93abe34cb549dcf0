package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luca-patrignani/hashledger/ledger"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [payload...]",
	Short: "Build a short chain and validate it after every block",
	Long: `Create a genesis block, then append one block per payload argument
(or prompt for --count payloads), validating the chain after each append.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, closeFn, err := newLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		payloads := args
		if len(payloads) == 0 {
			payloads, err = promptPayloads(prompter, viper.GetInt("count"))
			if err != nil {
				return err
			}
		}
		if err := simulate(cmd.Context(), chain, payloads, cfg.VerifyWorkers); err != nil {
			return err
		}

		pterm.DefaultSection.Println("Final Blockchain State")
		printChain(chain)
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntP("count", "n", 3, "Number of blocks to prompt for when no payload is given")
	if err := viper.BindPFlags(simulateCmd.Flags()); err != nil {
		slog.Error("Failed to bind simulateCmd flags", "error", err)
	}
}

func promptPayloads(p Prompter, count int) ([]string, error) {
	pterm.Info.Printfln("Kindly add %d new blocks!", count)
	payloads := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		data, err := promptText(p, "Enter data for block %d", i)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, data)
	}
	return payloads, nil
}

// simulate appends the genesis block and every payload, reporting the chain
// validity after each append. A failed append stops the run.
func simulate(ctx context.Context, chain *ledger.Blockchain, payloads []string, workers int) error {
	if _, err := chain.Append(genesisPayload); err != nil {
		return fmt.Errorf("failed to create genesis block: %w", err)
	}
	pterm.Success.Println("Genesis Block created successfully!")

	for _, payload := range payloads {
		b, err := chain.Append(payload)
		if err != nil {
			pterm.Error.Printfln("Failed to add block! %v", err)
			break
		}
		pterm.Success.Printfln("Block #%d added successfully!", b.Index)
		status := pterm.LightGreen("VALID")
		if err := chain.VerifyConcurrent(ctx, workers); err != nil {
			status = pterm.LightRed("INVALID")
		}
		pterm.Printfln("Chain validation: %s", status)
	}
	return nil
}
