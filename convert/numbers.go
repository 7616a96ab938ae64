package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angas/cheapslots-go/types"
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// PerMWhToPerKWh converts a market price per MWh to a price per kWh,
// rounded to four decimals.
func PerMWhToPerKWh(price decimal.Decimal) decimal.Decimal {
	return price.Div(thousand).Round(4)
}

func TwoDecimals(number decimal.Decimal) string {
	return number.StringFixed(2)
}

// ParsePrice reads a price that a source sends either as a JSON number or
// as a numeric string. Anything else, null and a missing field included, is
// a malformed record.
func ParsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	str := strings.TrimSpace(string(raw))
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	price, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %s is not numeric", types.ErrMalformedRecord, string(raw))
	}
	return price, nil
}
