package history

import "github.com/horizonbank/horizon/internal/models"

// direction describes how a category maps to a transaction type.
type direction int

const (
	alwaysWithdrawal direction = iota
	alwaysDeposit
	coinFlip // transfer: either direction, decided per draw
)

// descStyle describes the middle token of the description.
type descStyle int

const (
	withMerchant descStyle = iota // "<PREFIX> - <MERCHANT> - REF:<code>"
	withSalary                    // "<PREFIX> - SALARY - REF:<code>"
	withAccount                   // "<PREFIX> - FROM/TO ACCOUNT - REF:<code>"
	bare                          // "<PREFIX> - REF:<code>"
)

// category is one row of the fixed transaction-category table. Amount bounds
// are in whole currency units; the drawn amount has cent precision.
type category struct {
	name      string
	prefix    string
	direction direction
	style     descStyle
	minAmount int
	maxAmount int
}

// categories is the full category table. check_deposit is mapped to a
// withdrawal to match the seeded corpora this service replaces; see
// Config.CheckDepositAsDeposit for the corrected mapping.
var categories = []category{
	{name: "card_purchase", prefix: "CARD PURCHASE", direction: alwaysWithdrawal, style: withMerchant, minAmount: 5, maxAmount: 305},
	{name: "transfer", prefix: "TRANSFER", direction: coinFlip, style: withAccount, minAmount: 50, maxAmount: 1050},
	{name: "atm_withdrawal", prefix: "ATM WITHDRAWAL", direction: alwaysWithdrawal, style: bare, minAmount: 20, maxAmount: 420},
	{name: "direct_deposit", prefix: "DIRECT DEPOSIT", direction: alwaysDeposit, style: withSalary, minAmount: 1500, maxAmount: 4500},
	{name: "online_payment", prefix: "ONLINE PAYMENT", direction: alwaysWithdrawal, style: withMerchant, minAmount: 10, maxAmount: 210},
	{name: "bill_payment", prefix: "BILL PAYMENT", direction: alwaysWithdrawal, style: withMerchant, minAmount: 10, maxAmount: 210},
	{name: "check_deposit", prefix: "CHECK DEPOSIT", direction: alwaysWithdrawal, style: withMerchant, minAmount: 10, maxAmount: 210},
}

// CategoryBounds returns the amount range for a category name, for callers
// that validate generated corpora. ok is false for unknown names.
func CategoryBounds(name string) (min, max int, ok bool) {
	for _, c := range categories {
		if c.name == name {
			return c.minAmount, c.maxAmount, true
		}
	}
	return 0, 0, false
}

func (c category) typeFor(src Source, cfg Config) models.TransactionType {
	switch c.direction {
	case alwaysDeposit:
		return models.TransactionDeposit
	case coinFlip:
		if src.Coin() {
			return models.TransactionDeposit
		}
		return models.TransactionWithdrawal
	default:
		if c.name == "check_deposit" && cfg.CheckDepositAsDeposit {
			return models.TransactionDeposit
		}
		return models.TransactionWithdrawal
	}
}

// merchants is the fixed catalog drawn uniformly for merchant-bearing categories.
var merchants = []string{
	"WALMART", "TARGET", "COSTCO", "KROGER", "SAFEWAY",
	"WHOLE FOODS", "TRADER JOES", "ALDI", "PUBLIX", "WEGMANS",
	"AMAZON", "EBAY", "ETSY", "BEST BUY", "HOME DEPOT",
	"LOWES", "IKEA", "WAYFAIR", "APPLE STORE", "NIKE",
	"NETFLIX", "SPOTIFY", "HULU", "DISNEY PLUS", "HBO MAX",
	"UBER", "LYFT", "DOORDASH", "GRUBHUB", "INSTACART",
	"SHELL", "CHEVRON", "EXXON", "BP", "SPEEDWAY",
	"STARBUCKS", "MCDONALDS", "CHIPOTLE", "SUBWAY", "DUNKIN",
	"COMCAST", "VERIZON", "AT&T", "T-MOBILE", "PG&E",
}

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const refLength = 12
