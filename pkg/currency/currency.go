package currency

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// IFormatter renders integer cent amounts for display. It is selected once
// at construction and injected into whatever needs to print prices, instead
// of consulting ambient locale state.
type IFormatter interface {
	FormatCents(cents int64) string
}

type formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

func New(locale string, code string) (IFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", code, err)
	}

	return &formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

func (f *formatter) FormatCents(cents int64) string {
	amount := f.unit.Amount(float64(cents) / 100.0)
	return f.printer.Sprint(currency.Symbol(amount))
}
