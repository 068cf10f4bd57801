package ledger

import (
	"fmt"
	"strconv"
)

// Amount is a transfer amount. On the wire it is a JSON string with exactly
// two fraction digits ("150.00"), which is how the mobile clients have
// always persisted it; unmarshalling also accepts a plain JSON number.
type Amount float64

// MarshalJSON renders the amount as a quoted two-decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, strconv.FormatFloat(float64(a), 'f', 2, 64)), nil
}

// UnmarshalJSON accepts either "150.00" or 150.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) > 1 && raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		raw = unquoted
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(value)
	return nil
}

// String renders the two-decimal form used on the wire.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
