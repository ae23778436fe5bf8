package handlers

import (
	"github.com/horizonbank/horizon/internal/models"
)

// AccountView is the wire form of an account.
// swagger:model AccountView
type AccountView struct {
	// Account id
	// default: 1
	ID int64 `json:"id"`

	// Account type
	// default: checking
	Type string `json:"type"`

	// Balance with two fractional digits
	// default: 2500.00
	Balance string `json:"balance"`
}

// TransactionView is the wire form of a transaction. Amount is a fixed
// two-decimal string; the sign is carried by Type.
// swagger:model TransactionView
type TransactionView struct {
	// Transaction id
	// default: 1
	ID int64 `json:"id"`

	// Owning account id
	// default: 1
	AccountID int64 `json:"account_id"`

	// deposit or withdrawal
	// default: deposit
	Type string `json:"type"`

	// Amount, "NNNN.NN"
	// default: 120.50
	Amount string `json:"amount"`

	// Description
	// default: CARD PURCHASE - TARGET - REF:8FK2MQ01ZDW7
	Description string `json:"description"`

	// Calendar date of the transaction
	// default: 2024-01-15
	Date string `json:"date"`
}

func accountView(a models.AccountDB) AccountView {
	return AccountView{
		ID:      a.AccountID,
		Type:    a.Type,
		Balance: a.Balance.StringFixed(2),
	}
}

func accountViews(accounts []models.AccountDB) []AccountView {
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView(a))
	}
	return views
}

func transactionView(t models.TransactionDB) TransactionView {
	return TransactionView{
		ID:          t.TransactionID,
		AccountID:   t.AccountID,
		Type:        string(t.Type),
		Amount:      t.AmountString(),
		Description: t.Description,
		Date:        t.OccurredAt.Format("2006-01-02"),
	}
}

func transactionViews(txns []models.TransactionDB) []TransactionView {
	views := make([]TransactionView, 0, len(txns))
	for _, t := range txns {
		views = append(views, transactionView(t))
	}
	return views
}
