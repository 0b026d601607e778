package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/canteen/client/internal/domain/order"
	"github.com/canteen/client/internal/domain/shared"
	"github.com/canteen/client/internal/infrastructure/client"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}

// printer writes command results and toast messages
type printer struct {
	w      io.Writer
	format string
	money  *message.Printer

	ok   *color.Color
	fail *color.Color
	dim  *color.Color
	bold *color.Color
}

func newPrinter(w io.Writer, format string, noColor bool) *printer {
	p := &printer{
		w:      w,
		format: format,
		money:  message.NewPrinter(language.English),
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
		dim:    color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
	if noColor {
		color.NoColor = true
	}
	return p
}

// Success prints a confirmation toast
func (p *printer) Success(msg string) {
	if p.format != outputTable {
		return
	}
	p.ok.Fprintln(p.w, "✔ "+msg)
}

// Error prints a failure toast
func (p *printer) Error(msg string) {
	if p.format != outputTable {
		return
	}
	p.fail.Fprintln(p.w, "✘ "+msg)
}

// currencyCode is reported next to amounts in structured output
var currencyCode = currency.INR.String()

// Money formats an amount in rupees with English digit grouping
func (p *printer) Money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return p.money.Sprintf("₹%v", number.Decimal(f, number.Scale(2)))
}

// statusColor picks a color per order status
func statusColor(s order.Status) *color.Color {
	switch s {
	case order.StatusPending:
		return color.New(color.FgYellow)
	case order.StatusAccepted:
		return color.New(color.FgBlue)
	case order.StatusPreparing:
		return color.New(color.FgMagenta)
	case order.StatusReady, order.StatusDelivered:
		return color.New(color.FgGreen)
	case order.StatusCancelled:
		return color.New(color.FgRed)
	}
	return color.New(color.Reset)
}

// Status returns s colored for the terminal
func (p *printer) Status(s order.Status) string {
	return statusColor(s).Sprint(s.String())
}

// Render writes v as JSON or YAML, or calls table for the default format
func (p *printer) Render(v any, table func(tw *tabwriter.Writer)) error {
	switch p.format {
	case outputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

// Line prints a plain line in table mode only
func (p *printer) Line(format string, args ...any) {
	if p.format != outputTable {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

// friendlyMessage picks the message a customer should see for err
func friendlyMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

func printError(w io.Writer, err error) {
	c := color.New(color.FgRed, color.Bold)
	c.Fprintln(w, "Error: "+friendlyMessage(err))
}
