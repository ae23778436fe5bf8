// Package history generates synthetic multi-year transaction activity used to
// seed demo accounts with realistic-looking statements: month-by-month volume
// variability, category-appropriate amounts, recognizable merchant names and a
// running balance that never goes negative.
package history

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/models"
)

// Per-month candidate volume and day-of-month bounds.
const (
	minPerMonth = 5
	maxPerMonth = 15
	maxDay      = 28
)

// Record is one generated transaction. It carries no id: the storage layer
// assigns ids on insert, which keeps the generator free of shared counters.
type Record struct {
	AccountID   int64
	Type        models.TransactionType
	Amount      decimal.Decimal // positive, cent precision
	Description string
	Date        time.Time
}

// Config controls the two deliberately named behavior choices.
type Config struct {
	// CheckDepositAsDeposit maps the check_deposit category to a deposit,
	// matching its name. The default (false) reproduces the corpora this
	// generator was built to replace, where check deposits are withdrawals.
	CheckDepositAsDeposit bool

	// SortByDate sorts the full result chronologically before returning.
	// The balance guard already runs in date order inside each month, so
	// records emerge month-sorted either way; this makes the whole-window
	// ordering an explicit guarantee rather than a byproduct.
	SortByDate bool
}

// Generator produces synthetic account histories. Each Generator owns its
// Source and is not safe for concurrent use; concurrent callers should each
// construct their own.
type Generator struct {
	src Source
	cfg Config
}

// New creates a Generator drawing from src.
func New(src Source, cfg Config) *Generator {
	return &Generator{src: src, cfg: cfg}
}

// Generate walks month by month from windowStart to windowEnd and emits the
// account's synthetic activity. Candidates are drawn for the whole month
// first, then sorted by day so the balance guard runs in the order a bank
// statement replays: a withdrawal may only spend deposits that chronologically
// precede it. Guarded-out withdrawals are discarded, not resized or retried,
// so a month may realize fewer than its drawn volume.
func (g *Generator) Generate(accountID int64, startingBalance decimal.Decimal, windowStart, windowEnd time.Time) []Record {
	var out []Record
	balance := startingBalance

	cursor := time.Date(windowStart.Year(), windowStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(windowEnd) {
		perMonth := g.src.IntBetween(minPerMonth, maxPerMonth)

		var month []Record
		for i := 0; i < perMonth; i++ {
			day := g.src.IntBetween(1, maxDay)
			date := time.Date(cursor.Year(), cursor.Month(), day, 0, 0, 0, 0, time.UTC)
			if date.After(windowEnd) {
				break
			}
			if date.Before(windowStart) {
				continue
			}

			cat := pick(g.src, categories)
			txType := cat.typeFor(g.src, g.cfg)

			month = append(month, Record{
				AccountID:   accountID,
				Type:        txType,
				Amount:      g.drawAmount(cat),
				Description: g.describe(cat, txType),
				Date:        date,
			})
		}

		// Apply the non-negative guard in calendar order; draws on the same
		// day keep their draw order.
		sort.SliceStable(month, func(i, j int) bool { return month[i].Date.Before(month[j].Date) })
		for _, rec := range month {
			if rec.Type == models.TransactionWithdrawal {
				next := balance.Sub(rec.Amount)
				if next.IsNegative() {
					continue
				}
				balance = next
			} else {
				balance = balance.Add(rec.Amount)
			}
			out = append(out, rec)
		}

		cursor = cursor.AddDate(0, 1, 0)
	}

	if g.cfg.SortByDate {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	}
	return out
}

// drawAmount draws a cent-precision amount inside the category's bounds.
func (g *Generator) drawAmount(cat category) decimal.Decimal {
	cents := g.src.IntBetween(cat.minAmount*100, cat.maxAmount*100)
	return decimal.New(int64(cents), -2)
}

// describe builds "<PREFIX> - <MERCHANT|DIRECTION> - REF:<code>". The bare
// style (ATM withdrawals) omits the middle token.
func (g *Generator) describe(cat category, txType models.TransactionType) string {
	parts := []string{cat.prefix}
	switch cat.style {
	case withMerchant:
		parts = append(parts, pick(g.src, merchants))
	case withSalary:
		parts = append(parts, "SALARY")
	case withAccount:
		if txType == models.TransactionDeposit {
			parts = append(parts, "FROM ACCOUNT")
		} else {
			parts = append(parts, "TO ACCOUNT")
		}
	}
	parts = append(parts, "REF:"+g.refCode())
	return strings.Join(parts, " - ")
}

func (g *Generator) refCode() string {
	var b strings.Builder
	b.Grow(refLength)
	for i := 0; i < refLength; i++ {
		b.WriteByte(refAlphabet[g.src.IntBetween(0, len(refAlphabet)-1)])
	}
	return b.String()
}
