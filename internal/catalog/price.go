package catalog

import (
	"math"

	"golang.org/x/text/message"

	"github.com/osa911/apexdrive/internal/i18n"
)

// DefaultUSDRate is used when no positive exchange rate is configured.
const DefaultUSDRate = 95

// FormatPrice renders a daily price in RUB for display. English prices are
// converted to whole dollars, never below $1. Non-positive prices render
// as "".
func FormatPrice(rub int, lang i18n.Lang, usdRate float64) string {
	if rub <= 0 {
		return ""
	}
	p := message.NewPrinter(lang.Tag())
	if lang == i18n.RU {
		return p.Sprintf("от %d ₽ / сутки", rub)
	}

	if usdRate <= 0 || math.IsNaN(usdRate) || math.IsInf(usdRate, 0) {
		usdRate = DefaultUSDRate
	}
	usd := int(math.Max(1, math.Round(float64(rub)/usdRate)))
	return p.Sprintf("from $%d / day", usd)
}
