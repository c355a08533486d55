package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hargamobil/hargamobil/internal/dataset"
)

// newDatasetCmd creates the dataset subcommand.
func newDatasetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dataset",
		Short: "Tampilkan ringkasan lembar harga yang dimuat",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := dataset.Load(cfg.Dataset.Path)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}

			if outputJSON {
				summary := struct {
					Path   string   `json:"path"`
					Rows   int      `json:"rows"`
					Brands []string `json:"brands"`
					Types  []string `json:"types"`
				}{
					Path:   cfg.Dataset.Path,
					Rows:   store.Len(),
					Brands: store.DistinctBrands(),
					Types:  store.DistinctTypes(),
				}
				data, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			ui := NewUI(false, !IsTerminal())
			ui.Info("Lembar harga: %s", cfg.Dataset.Path)
			ui.KeyValue("Jumlah baris", store.Len())
			ui.KeyValue("Brand", strings.Join(store.DistinctBrands(), ", "))
			ui.KeyValue("Jumlah tipe", len(store.DistinctTypes()))
			return nil
		},
	}
}
