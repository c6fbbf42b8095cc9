package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

const lineSeparator = ", "

// The product group is greedy and the quantity is anchored, so a name that
// itself contains " x " still parses; a name containing ", " does not.
// Rows written by the legacy till carry a "$" before the line total.
var cartLinePattern = regexp.MustCompile(`^(\d+) x (.+) \(\$?(\d+(?:\.\d+)?)\)$`)

var productReplacer = strings.NewReplacer(",", " ", "(", " ", ")", " ", "\n", " ", "\r", " ")

type CartFragment struct {
	Quantity int
	Product  string
	Total    decimal.Decimal
}

// SanitizeProduct strips the delimiters the cart description format relies on.
func SanitizeProduct(name string) string {
	return strings.Join(strings.Fields(productReplacer.Replace(name)), " ")
}

// FormatCart renders cart lines as "{quantity} x {product} ({totalPrice})"
// joined with ", ".
func FormatCart(lines []models.CartLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%d x %s (%s)", line.Quantity, SanitizeProduct(line.Product), line.TotalPrice.StringFixed(2)))
	}
	return strings.Join(parts, lineSeparator)
}

// ParseCartDescription is the inverse of FormatCart. Fragments that do not
// match, or that carry a zero quantity, are dropped.
func ParseCartDescription(desc string) []CartFragment {
	var out []CartFragment
	for _, part := range strings.Split(desc, lineSeparator) {
		m := cartLinePattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty == 0 {
			continue
		}
		total, err := decimal.NewFromString(m[3])
		if err != nil {
			continue
		}
		out = append(out, CartFragment{Quantity: qty, Product: m[2], Total: total})
	}
	return out
}
