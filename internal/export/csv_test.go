package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/mboyd/boardbank/internal/models"
	"github.com/stretchr/testify/suite"
)

type ExportTestSuite struct {
	suite.Suite
	testNow time.Time
}

func (s *ExportTestSuite) SetupTest() {
	s.testNow = time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
}

func TestExportTestSuite(t *testing.T) {
	suite.Run(t, new(ExportTestSuite))
}

func (s *ExportTestSuite) TestWriteTransactions() {
	transactions := []*models.Transaction{
		{
			ID:         "txn-1",
			PlayerID:   "player-1",
			PlayerName: "Alice",
			Amount:     0,
			NewBalance: 1500,
			Reason:     "Player created",
			Timestamp:  s.testNow,
		},
		{
			ID:         "txn-2",
			PlayerID:   "player-1",
			PlayerName: "Alice",
			Amount:     -400,
			NewBalance: 1100,
			Reason:     "Purchased Boardwalk",
			Timestamp:  s.testNow.Add(time.Minute),
		},
	}

	var buf bytes.Buffer
	err := WriteTransactions(&buf, transactions)
	s.Require().NoError(err)

	rows, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal([]string{"timestamp", "player", "amount", "new_balance", "reason"}, rows[0])
	s.Equal([]string{"2025-06-01T18:30:00Z", "Alice", "0", "1500", "Player created"}, rows[1])
	s.Equal([]string{"2025-06-01T18:31:00Z", "Alice", "-400", "1100", "Purchased Boardwalk"}, rows[2])
}

func (s *ExportTestSuite) TestWriteTransactionsEmptyLog() {
	var buf bytes.Buffer
	err := WriteTransactions(&buf, nil)
	s.Require().NoError(err)

	rows, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal([]string{"timestamp", "player", "amount", "new_balance", "reason"}, rows[0])
}

func (s *ExportTestSuite) TestReasonWithComma() {
	transactions := []*models.Transaction{
		{
			ID:         "txn-1",
			PlayerID:   "player-1",
			PlayerName: "Alice",
			Amount:     50,
			NewBalance: 1550,
			Reason:     "Received rent for Park Place, improved",
			Timestamp:  s.testNow,
		},
	}

	var buf bytes.Buffer
	err := WriteTransactions(&buf, transactions)
	s.Require().NoError(err)

	rows, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Received rent for Park Place, improved", rows[1][4])
}
