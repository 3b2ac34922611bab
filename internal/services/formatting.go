package services

import (
	"fmt"
	"time"

	"gym-invoicing/internal/config"
)

// Formatter renders money, date and date-time values the way they appear on
// the printed invoice. The rules are part of the document contract: money is
// the configured symbol followed by exactly two decimals, dates are
// day/month/year with leading zeros, date-times add a 12-hour clock.
type Formatter struct {
	currencySymbol string
	dateFormat     string
	dateTimeFormat string
}

// NewFormatter builds a formatter from invoice configuration, falling back to
// the standard invoice formats for any unset field.
func NewFormatter(cfg *config.InvoiceConfig) *Formatter {
	f := &Formatter{
		currencySymbol: "₹",
		dateFormat:     "02/01/2006",
		dateTimeFormat: "02/01/2006 03:04 PM",
	}
	if cfg == nil {
		return f
	}
	if cfg.CurrencySymbol != "" {
		f.currencySymbol = cfg.CurrencySymbol
	}
	if cfg.DateFormat != "" {
		f.dateFormat = cfg.DateFormat
	}
	if cfg.DateTimeFormat != "" {
		f.dateTimeFormat = cfg.DateTimeFormat
	}
	return f
}

// CurrencySymbol reports the symbol prefixed to monetary values.
func (f *Formatter) CurrencySymbol() string {
	return f.currencySymbol
}

// Money formats a monetary value as symbol-prefixed two-decimal string.
func (f *Formatter) Money(v float64) string {
	return fmt.Sprintf("%s%.2f", f.currencySymbol, v)
}

// Date formats a date as dd/mm/yyyy.
func (f *Formatter) Date(t time.Time) string {
	return t.Format(f.dateFormat)
}

// DateTime formats a timestamp as dd/mm/yyyy plus 12-hour time.
func (f *Formatter) DateTime(t time.Time) string {
	return t.Format(f.dateTimeFormat)
}

// DateRange formats a membership period as "start - end".
func (f *Formatter) DateRange(start, end time.Time) string {
	return f.Date(start) + " - " + f.Date(end)
}

// Rate formats a tax rate exactly as given, without padded decimals.
func (f *Formatter) Rate(rate float64) string {
	return fmt.Sprintf("%g%%", rate)
}
