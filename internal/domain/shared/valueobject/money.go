package valueobject

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/kobo/backend/internal/domain/shared"
)

// ErrNegativeAmount is returned when constructing Money with a negative amount
var ErrNegativeAmount = shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")

var jpyPrinter = message.NewPrinter(language.Japanese)

// Money is a value object for a JPY amount.
// JPY has no minor unit; amounts are whole yen.
type Money struct {
	amount decimal.Decimal
}

// NewMoneyJPY creates Money from a decimal yen amount
func NewMoneyJPY(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount.Round(0)}, nil
}

// NewMoneyJPYFromInt creates Money from an integer yen amount
func NewMoneyJPYFromInt(yen int64) (Money, error) {
	return NewMoneyJPY(decimal.NewFromInt(yen))
}

// MustNewMoneyJPY creates Money, panics on error. For tests and fixtures.
func MustNewMoneyJPY(yen int64) Money {
	m, err := NewMoneyJPYFromInt(yen)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the yen amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Yen returns the amount as int64
func (m Money) Yen() int64 {
	return m.amount.IntPart()
}

// Format renders the amount as "¥2,500" with Japanese digit grouping
func (m Money) Format() string {
	return jpyPrinter.Sprintf("¥%v", number.Decimal(m.amount.IntPart()))
}

// Equals checks value equality
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}
