package main

import (
	"context"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/hargamobil/hargamobil/pkg/pipeline"
)

// newSearchCmd creates the search subcommand.
func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <pertanyaan>",
		Short: "Cari harga dari satu pertanyaan",
		Long: `Search menjalankan satu pertanyaan harga dan menampilkan hasilnya.

Contoh:
  hargamobil search berapa harga avanza 2020 matic
  hargamobil search "sigra manual 2025"
  hargamobil --json search brio 2024`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := buildPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+10*time.Second)
			defer cancel()

			return runQuery(ctx, p, strings.Join(args, " "))
		},
	}
}

// runQuery processes one query with a spinner and renders the outcome.
// It is shared by the search command and the REPL.
func runQuery(ctx context.Context, p *pipeline.Pipeline, input string) error {
	ui := NewUI(outputJSON, !IsTerminal())

	var spin *spinner.Spinner
	if !outputJSON && IsTerminal() {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = " Mencari harga..."
		spin.Start()
	}

	result, err := p.Process(ctx, input)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	return renderResult(ui, result)
}
