package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DateLayout     = "Mon, Jan 2, 2006"
	DateTimeLayout = "Mon, Jan 2, 3:04 PM"
)

// Formatter renders money and dates for receipts in one locale.
//
// It is safe for concurrent use; message.Printer holds no mutable state after
// construction.
type Formatter struct {
	tag        language.Tag
	printer    *message.Printer
	decimalSep string
	location   *time.Location
}

// NewFormatter builds a Formatter for a BCP 47 locale. Unknown locales fall back
// to English. A nil location means UTC.
func NewFormatter(locale string, location *time.Location) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	if location == nil {
		location = time.UTC
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		tag:        tag,
		printer:    printer,
		decimalSep: decimalSeparator(printer),
		location:   location,
	}
}

// Locale returns the resolved language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Money formats m as e.g. "$90.00" or "-$20.00".
func (f *Formatter) Money(m Money) string {
	scale := MinorUnits(m.Currency)
	amount := m.Amount
	negative := amount < 0
	if negative {
		amount = -amount
	}

	value := decimal.New(amount, -int32(scale))
	whole := value.IntPart()
	out := f.printer.Sprintf("%d", whole)
	if scale > 0 {
		frac := value.Sub(decimal.NewFromInt(whole)).Shift(int32(scale)).IntPart()
		out += f.decimalSep + fmt.Sprintf("%0*d", scale, frac)
	}

	out = f.symbol(m.Currency) + out
	if negative {
		out = "-" + out
	}
	return out
}

// symbol is the CLDR currency symbol for the locale, e.g. "$" or "CA$". When
// the locale has no symbol the ISO code is used, separated by a space.
func (f *Formatter) symbol(code string) string {
	unit, ok := isoUnit(code)
	if !ok {
		return code + " "
	}
	symbol := f.printer.Sprint(xcurrency.Symbol(unit))
	if symbol == unit.String() {
		return symbol + " "
	}
	return symbol
}

// Quantity formats an exact quantity with locale digit grouping, dropping
// trailing zeros.
func (f *Formatter) Quantity(q decimal.Decimal) string {
	whole := q.Truncate(0)
	out := f.printer.Sprintf("%d", whole.Abs().IntPart())
	if q.IsNegative() {
		out = "-" + out
	}
	frac := q.Sub(whole).Abs()
	if frac.IsZero() {
		return out
	}
	digits := strings.TrimPrefix(frac.String(), "0.")
	return out + f.decimalSep + digits
}

// Date formats t in the formatter's location.
func (f *Formatter) Date(t time.Time) string {
	return t.In(f.location).Format(DateLayout)
}

// DateTime formats t with the time of day.
func (f *Formatter) DateTime(t time.Time) string {
	return t.In(f.location).Format(DateTimeLayout)
}

func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	sep := strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
	if sep == "" {
		return "."
	}
	return sep
}
