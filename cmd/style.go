package main

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/hashledger/digest"
	"github.com/luca-patrignani/hashledger/ledger"
)

func formatTime(unix int64) string {
	return time.Unix(unix, 0).Format(time.ANSIC)
}

func getBlockPanel(b ledger.Block) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	info := pterm.Sprintfln("Timestamp: %s", formatTime(b.Timestamp))
	info += pterm.Sprintfln("Data: %s", b.Payload)
	info += pterm.Sprintfln("Previous Hash: %s", pterm.Gray(b.PrevHash))
	info += pterm.Sprintfln("Hash: %s", pterm.LightCyan(b.Hash))
	info += printTransactions(b.Transactions)
	title := pterm.LightYellow("|BLOCK #" + strconv.Itoa(b.Index) + "|")
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopCenter().Sprint(info)}
}

func printTransactions(txs []ledger.Transaction) string {
	if len(txs) == 0 {
		return pterm.Sprintln("No transactions in this block")
	}
	data := pterm.TableData{{"#", "From", "To", "Amount", "Time"}}
	for i, tx := range txs {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			tx.Sender,
			tx.Receiver,
			tx.Amount.StringFixed(digest.AmountDecimals),
			formatTime(tx.Timestamp),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return pterm.Sprintfln("%d transactions", len(txs))
	}
	return "\nTransactions:\n" + table
}

func printChain(bc *ledger.Blockchain) {
	if bc.Len() == 0 {
		pterm.Info.Println("Blockchain is empty")
		return
	}
	var panels [][]pterm.Panel
	for _, b := range bc.All() {
		panels = append(panels, []pterm.Panel{getBlockPanel(b)})
	}
	pterm.DefaultPanel.WithPanels(panels).Render()
}

func printValidation(err error) {
	if err == nil {
		pterm.Success.Println("Blockchain is valid!")
		return
	}
	if m, ok := ledger.IsMismatch(err); ok {
		pterm.Error.Printfln("Blockchain is invalid! %s check failed at block %d", m.Kind, m.Index)
		return
	}
	pterm.Error.Printfln("Validation aborted: %v", err)
}
