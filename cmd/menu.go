package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/luca-patrignani/hashledger/ledger"
)

const genesisPayload = "Genesis Block"

var menuOptions = []string{
	"1. Add new block",
	"2. Add transaction to latest block",
	"3. Display blockchain",
	"4. Validate blockchain",
	"5. Exit",
}

// session drives the interactive menu over a single ledger.
type session struct {
	chain   *ledger.Blockchain
	prompt  Prompter
	workers int
	logger  *slog.Logger
}

// createGenesis appends the first block. Failing here is fatal.
func (s *session) createGenesis() error {
	spinner, _ := pterm.DefaultSpinner.Start("Creating the genesis block...")
	if _, err := s.chain.Append(genesisPayload); err != nil {
		spinner.Fail("Failed to create genesis block!")
		return fmt.Errorf("failed to create genesis block: %w", err)
	}
	spinner.Success("Genesis block created successfully!")
	return nil
}

// run loops over the menu until the user exits or input fails.
func (s *session) run(ctx context.Context) error {
	for {
		choice, err := s.prompt.Select("Blockchain Menu", menuOptions)
		if err != nil {
			return fmt.Errorf("failed to read menu choice: %w", err)
		}
		switch choice {
		case menuOptions[0]:
			err = s.addBlock()
		case menuOptions[1]:
			err = s.addTransaction()
		case menuOptions[2]:
			printChain(s.chain)
		case menuOptions[3]:
			s.validate(ctx)
		case menuOptions[4]:
			pterm.Info.Println("Exiting...")
			return nil
		default:
			pterm.Warning.Printfln("Invalid choice! Please choose one of the %d options.", len(menuOptions))
		}
		if err != nil {
			return err
		}
	}
}

func (s *session) addBlock() error {
	data, err := promptText(s.prompt, "Enter data for new block")
	if err != nil {
		return err
	}
	b, err := s.chain.Append(data)
	if err != nil {
		s.logger.Error("failed to add block", "error", err)
		pterm.Error.Printfln("Failed to add block! %v", err)
		return nil
	}
	pterm.Success.Printfln("Block #%d added successfully!", b.Index)
	return nil
}

func (s *session) addTransaction() error {
	if s.chain.Len() == 0 {
		pterm.Warning.Println("Create a block first!")
		return nil
	}
	sender, err := promptText(s.prompt, "Enter sender")
	if err != nil {
		return err
	}
	receiver, err := promptText(s.prompt, "Enter receiver")
	if err != nil {
		return err
	}
	amount, err := promptAmount(s.prompt, "Enter amount")
	if err != nil {
		return err
	}

	b, err := s.chain.AddTransactionToTail(sender, receiver, amount)
	switch {
	case err == nil:
		pterm.Success.Printfln("Transaction added successfully to block #%d!", b.Index)
	case errors.Is(err, ledger.ErrEmptyLedger):
		pterm.Warning.Println("Create a block first!")
	default:
		if c, ok := ledger.IsCapacityExceeded(err); ok {
			pterm.Error.Printfln("Failed to add transaction! Block #%d already holds %d transactions.", c.Index, c.Max)
		} else {
			pterm.Error.Printfln("Failed to add transaction! %v", err)
		}
		s.logger.Warn("transaction rejected", "error", err)
	}
	return nil
}

func (s *session) validate(ctx context.Context) bool {
	err := s.chain.VerifyConcurrent(ctx, s.workers)
	printValidation(err)
	return err == nil
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive blockchain menu",
	Long:  `Create a genesis block and manage the chain from an interactive menu.`,
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	chain, closeFn, err := newLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s := &session{
		chain:   chain,
		prompt:  prompter,
		workers: cfg.VerifyWorkers,
		logger:  slog.Default(),
	}
	if err := s.createGenesis(); err != nil {
		return err
	}
	return s.run(cmd.Context())
}
