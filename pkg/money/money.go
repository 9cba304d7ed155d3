// Package money formatea importes en euros con las convenciones de es-ES.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Format devuelve el importe con 2 decimales, separadores locales y sufijo " €".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f €", f)
}
