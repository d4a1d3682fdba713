package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/app/report"
	"github.com/m3rciful/txbot/core/telegram/format"
)

const (
	welcomeText = `👋 Welcome to the Transaction Tracker Bot!

You can use this bot to log and view your investment transactions.
Type /help to see the list of available commands.`

	helpText = `📋 *Available Commands:*
/start - Show welcome message
/help - Show this help message
/invest <amount> - Log a new investment
/return <amount> - Log a return
/summary - Show a summary of your transactions
/history - Show your transaction history
/cancel - Cancel the transaction in progress`

	noTransactionsText = "No transactions found."
	summaryFailedText  = "❌ Failed to fetch summary. Please try again later."
	historyFailedText  = "❌ Failed to fetch history. Please try again later."
)

func summaryText(sum report.Summary, currency string) string {
	return fmt.Sprintf("💼 *Summary:*\nTotal Invested: %s%s\nTotal Returned: %s%s\nNet: %s%s",
		currency, sum.Invested.String(),
		currency, sum.Returned.String(),
		currency, sum.Net.String(),
	)
}

func historyText(records []ledger.Record, currency string) string {
	var b strings.Builder
	b.WriteString("📜 *Transaction History:*\n")
	for _, r := range records {
		fmt.Fprintf(&b, "\n%s | %s | %s%s | %s",
			format.EscapeV1(r.Date),
			format.EscapeV1(string(r.Type)),
			currency, format.EscapeV1(r.Amount),
			format.EscapeV1(string(r.Status)),
		)
	}
	return b.String()
}
