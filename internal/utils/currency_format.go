package utils

import "strings"

// GroupThousands inserts comma separators into the integer part of an
// already formatted amount.
// Example: "1234567.50" returns "1,234,567.50"
// Example: "-1000.00" returns "-1,000.00"
// Non-numeric placeholders such as "..." are returned unchanged.
func GroupThousands(amount string) string {
	sign := ""
	if strings.HasPrefix(amount, "-") {
		sign, amount = "-", amount[1:]
	}

	intPart, frac, hasFrac := strings.Cut(amount, ".")
	if intPart == "" || strings.Trim(intPart, "0123456789") != "" {
		return sign + amount
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	out := sign + b.String()
	if hasFrac {
		out += "." + frac
	}
	return out
}
