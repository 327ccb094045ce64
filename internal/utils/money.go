// internal/utils/money.go
package utils

import "strconv"

const CurrencySuffix = " so‘m"

// FormatMoney renders an amount in so'm with space separated thousands:
// 170000 -> "170 000 so‘m".
func FormatMoney(amount int64) string {
	return GroupThousands(amount) + CurrencySuffix
}

func GroupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if digits[0] == '-' {
		sign, digits = "-", digits[1:]
	}

	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}
