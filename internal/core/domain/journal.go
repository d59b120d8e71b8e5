package domain

import "github.com/shopspring/decimal"

// EntrySide indicates whether a journal line is a debit or a credit row.
// The values are the literal strings the ERP exports expect.
type EntrySide string

const (
	Debit  EntrySide = "차변"
	Credit EntrySide = "대변"
)

// JournalLine is one debit or credit row of a double-entry journal batch.
// Amounts are positive whole currency units; the side carries the sign.
type JournalLine struct {
	BatchNo      int             `json:"batchNo"` // identifies the originating voucher
	LineNo       int             `json:"lineNo"`  // global, monotonically increasing per generation run
	PostingDate  string          `json:"postingDate"`
	AccountCode  string          `json:"accountCode"`
	AccountTitle string          `json:"accountTitle"`
	Side         EntrySide       `json:"side"`
	Amount       decimal.Decimal `json:"amount"`
	CustomerName string          `json:"customerName"`
	CustomerCode string          `json:"customerCode"`
	ProjectCode  string          `json:"projectCode"`
	ProjectName  string          `json:"projectName"`
	Memo         string          `json:"memo"`
	FileID       string          `json:"fileID"`
}

// JournalBatch is the ordered set of lines produced from one voucher: exactly
// one accounts-payable credit line followed by one or more debit lines.
type JournalBatch struct {
	BatchNo int           `json:"batchNo"`
	FileID  string        `json:"fileID"`
	Lines   []JournalLine `json:"lines"`
}

// DebitTotal sums the debit lines of the batch.
func (b JournalBatch) DebitTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b.Lines {
		if l.Side == Debit {
			sum = sum.Add(l.Amount)
		}
	}
	return sum
}

// CreditTotal sums the credit lines of the batch.
func (b JournalBatch) CreditTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b.Lines {
		if l.Side == Credit {
			sum = sum.Add(l.Amount)
		}
	}
	return sum
}

// IsBalanced reports whether debits equal credits exactly.
func (b JournalBatch) IsBalanced() bool {
	return b.DebitTotal().Equal(b.CreditTotal())
}
