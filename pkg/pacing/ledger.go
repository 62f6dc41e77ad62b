package pacing

// NonTodayLedgerTotal sums every ledger entry except the one recorded for
// today. Subtracting the result from the live cumulative word count isolates
// the words written specifically today. The ledger is never modified here.
func NonTodayLedgerTotal(ledger map[string]int, today string) int {
	total := 0
	for date, words := range ledger {
		if date != today {
			total += words
		}
	}
	return total
}
