package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// Prompter reads user input. The pterm implementation is interactive; tests
// use a scripted one.
type Prompter interface {
	Select(title string, options []string) (string, error)
	Text(prompt string) (string, error)
}

type ptermPrompter struct{}

func (ptermPrompter) Select(title string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(title).
		WithOptions(options).
		WithMaxHeight(len(options)).
		Show()
}

func (ptermPrompter) Text(prompt string) (string, error) {
	s, err := pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).Show()
	pterm.Println()
	return s, err
}

// promptAmount asks until the answer parses as a decimal number.
func promptAmount(p Prompter, prompt string) (decimal.Decimal, error) {
	for {
		s, err := p.Text(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(s))
		if err == nil {
			return amount, nil
		}
		pterm.Warning.Println("Invalid input. Please enter a valid number.")
	}
}

func promptText(p Prompter, format string, a ...any) (string, error) {
	s, err := p.Text(fmt.Sprintf(format, a...))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
