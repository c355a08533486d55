package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hargamobil/hargamobil/pkg/pipeline"
)

// newReplCmd creates the repl subcommand.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Mode interaktif: satu pertanyaan per baris",
		Long: `Repl membaca pertanyaan dari stdin, satu per baris, dan menampilkan
hasil setiap pertanyaan. Ketik "exit" atau "quit" (atau Ctrl-D) untuk keluar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, store, err := buildPipeline()
			if err != nil {
				return err
			}
			defer p.Close()

			fmt.Printf("hargamobil %s — %d baris harga dimuat. Ketik pertanyaan, atau \"exit\" untuk keluar.\n",
				version, store.Len())

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					fmt.Println()
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+10*time.Second)
				err := runQuery(ctx, p, line)
				cancel()
				if err != nil {
					if errors.Is(err, pipeline.ErrEmptyQuery) {
						continue
					}
					fmt.Fprintf(os.Stderr, "✗ %v\n", err)
				}
			}
			return scanner.Err()
		},
	}
}
