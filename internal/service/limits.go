package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Column bounds of the schema in internal/migrations. Input outside them is a
// ValidationError here rather than a failed write.
const (
	maxCodeLength   = 64  // employee_id, mail_id, item_type, bill type
	maxNameLength   = 255 // names, email
	maxStatusLength = 32

	maxStock   = math.MaxInt32 // INTEGER quantity and reorder_level
	moneyScale = 2             // NUMERIC(12, 2)
)

// maxMoney is the first value NUMERIC(12, 2) cannot hold
var maxMoney = decimal.New(1, 12-moneyScale)

type fieldLimit struct {
	field string
	value string
	max   int
}

// checkLengths fails on the first value longer than its column allows.
// Lengths are counted in characters, as VARCHAR does.
func (s *DefaultService) checkLengths(limits ...fieldLimit) error {
	for _, l := range limits {
		if err := s.validate.Var(l.value, "max="+strconv.Itoa(l.max)); err != nil {
			return invalid(fmt.Sprintf("%s must be at most %d characters", l.field, l.max))
		}
	}
	return nil
}

func checkMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return invalid(fmt.Sprintf("%s must have at most %d decimal places", field, moneyScale))
	}
	if d.Abs().GreaterThanOrEqual(maxMoney) {
		return invalid(field + " is too large")
	}
	return nil
}
