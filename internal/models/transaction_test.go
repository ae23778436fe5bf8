package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDB_AmountString(t *testing.T) {
	txn := TransactionDB{Amount: decimal.RequireFromString("1234.5")}
	assert.Equal(t, "1234.50", txn.AmountString())

	txn.Amount = decimal.NewFromInt(7)
	assert.Equal(t, "7.00", txn.AmountString())
}

func TestTransactionDB_Signed(t *testing.T) {
	amount := decimal.RequireFromString("250.75")

	deposit := TransactionDB{Type: TransactionDeposit, Amount: amount}
	assert.True(t, deposit.Signed().Equal(amount))

	withdrawal := TransactionDB{Type: TransactionWithdrawal, Amount: amount}
	assert.True(t, withdrawal.Signed().Equal(amount.Neg()))

	balance := decimal.NewFromInt(1000)
	balance = balance.Add(deposit.Signed()).Add(withdrawal.Signed())
	assert.True(t, balance.Equal(decimal.NewFromInt(1000)))
}
