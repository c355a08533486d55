// Package main provides output rendering for the hargamobil CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/hargamobil/hargamobil/internal/search"
	"github.com/hargamobil/hargamobil/pkg/pipeline"
)

// UI provides user-friendly output utilities.
type UI struct {
	noColor  bool
	jsonMode bool
}

// NewUI creates a new UI instance.
func NewUI(jsonMode, noColor bool) *UI {
	return &UI{noColor: noColor, jsonMode: jsonMode}
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("✓ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgGreen).Printf("✓ %s\n", fmt.Sprintf(format, args...))
	}
}

// Error prints an error message.
func (ui *UI) Error(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgRed).Printf("✗ %s\n", fmt.Sprintf(format, args...))
	}
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("⚠ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgYellow).Printf("⚠ %s\n", fmt.Sprintf(format, args...))
	}
}

// Info prints an info message.
func (ui *UI) Info(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("ℹ %s\n", fmt.Sprintf(format, args...))
	} else {
		color.New(color.FgCyan).Printf("ℹ %s\n", fmt.Sprintf(format, args...))
	}
}

// KeyValue prints a key-value pair.
func (ui *UI) KeyValue(key string, value interface{}) {
	if ui.jsonMode {
		return
	}
	if ui.noColor {
		fmt.Printf("  %s: %v\n", key, value)
	} else {
		color.New(color.FgYellow).Printf("  %s: ", key)
		fmt.Printf("%v\n", value)
	}
}

// Section prints a section header.
func (ui *UI) Section(title string) {
	if ui.jsonMode {
		return
	}
	fmt.Println()
	if ui.noColor {
		fmt.Printf("━━━ %s ━━━\n", strings.ToUpper(title))
	} else {
		color.New(color.FgMagenta, color.Bold).Printf("━━━ %s ━━━\n", strings.ToUpper(title))
	}
	fmt.Println()
}

// Table prints a formatted table.
func (ui *UI) Table(headers []string, rows [][]string) {
	if ui.jsonMode || len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	ui.tableRule(widths, "┌", "┬", "┐", "+")
	ui.tableRow(widths, headers, true)
	ui.tableRule(widths, "├", "┼", "┤", "+")
	for _, row := range rows {
		ui.tableRow(widths, row, false)
	}
	ui.tableRule(widths, "└", "┴", "┘", "+")
}

func (ui *UI) tableRule(widths []int, left, mid, right, plain string) {
	frame := func(s string) {
		if ui.noColor {
			fmt.Print(plain)
		} else {
			color.New(color.FgCyan, color.Bold).Print(s)
		}
	}
	frame(left)
	for i, width := range widths {
		if ui.noColor {
			fmt.Print(strings.Repeat("-", width+2))
		} else {
			fmt.Print(strings.Repeat("─", width+2))
		}
		if i < len(widths)-1 {
			frame(mid)
		}
	}
	frame(right)
	fmt.Println()
}

func (ui *UI) tableRow(widths []int, cells []string, header bool) {
	sep := func() {
		switch {
		case ui.noColor:
			fmt.Print("|")
		case header:
			color.New(color.FgCyan, color.Bold).Print("│")
		default:
			fmt.Print("│")
		}
	}
	sep()
	for i, cell := range cells {
		if i < len(widths) {
			fmt.Printf(" %-*s ", widths[i], cell)
			sep()
		}
	}
	fmt.Println()
}

// IsTerminal checks if stdout is a terminal.
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// renderResult prints one query result, either as JSON or as the
// human-readable Indonesian report.
func renderResult(ui *UI, result pipeline.QueryResult) error {
	if outputJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	ui.Info("Pencarian untuk: %q", result.Input)
	ui.KeyValue("Brand", orDash(result.Echo.Brand))
	ui.KeyValue("Tipe", orDash(result.Echo.Tipe))
	ui.KeyValue("Tahun", orDash(result.Echo.Tahun))
	ui.KeyValue("Transmisi", result.Echo.Transmisi)

	switch result.Outcome.Status {
	case search.StatusIncomplete:
		ui.Warning("Data tidak lengkap. Pastikan input berisi brand, tipe, dan tahun.")

	case search.StatusNotFound:
		ui.Warning("Data tidak ditemukan untuk kombinasi tersebut.")

	case search.StatusPartialMatch:
		ui.Warning("Tipe %s tidak tersedia pada tahun %s, namun tersedia pada tahun: %s",
			result.Echo.Tipe, result.Echo.Tahun, strings.Join(result.Outcome.AvailableYears, ", "))

	case search.StatusFound:
		ui.Section("On The Road Realisasi New Car")
		headers := []string{"No", "Tipe", "Min", "Average", "Max", "Harga Baru"}
		rows := make([][]string, 0, len(result.Outcome.Rows))
		for _, row := range result.Outcome.Rows {
			rows = append(rows, []string{
				strconv.Itoa(row.Ordinal), row.Label, row.Min, row.Average, row.Max, row.HargaBaru,
			})
		}
		ui.Table(headers, rows)
		ui.Success("%d hasil ditemukan", len(result.Outcome.Rows))
	}

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
