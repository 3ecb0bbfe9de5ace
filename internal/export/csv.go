package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mboyd/boardbank/internal/models"
)

var header = []string{"timestamp", "player", "amount", "new_balance", "reason"}

// WriteTransactions writes the transaction log as CSV, one row per
// entry in log order, with a header row.
func WriteTransactions(w io.Writer, transactions []*models.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, txn := range transactions {
		row := []string{
			txn.Timestamp.Format(time.RFC3339),
			txn.PlayerName,
			strconv.Itoa(txn.Amount),
			strconv.Itoa(txn.NewBalance),
			txn.Reason,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", txn.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}

	return nil
}
