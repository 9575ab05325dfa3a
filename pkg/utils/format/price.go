package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "AED"

// PriceFormatter renders listing prices as "<CODE> 1,250,000".
type PriceFormatter struct {
	currency string
	printer  *message.Printer
}

func NewPriceFormatter(currency string) *PriceFormatter {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PriceFormatter{
		currency: currency,
		printer:  message.NewPrinter(language.English),
	}
}

func (f *PriceFormatter) Currency() string {
	return f.currency
}

// Format never prints decimals; fractional prices are rounded.
func (f *PriceFormatter) Format(price float64) string {
	return f.currency + " " + f.printer.Sprintf("%v", number.Decimal(price, number.MaxFractionDigits(0)))
}
