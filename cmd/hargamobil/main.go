// Package main provides the hargamobil CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hargamobil/hargamobil/internal/config"
	"github.com/hargamobil/hargamobil/internal/dataset"
	"github.com/hargamobil/hargamobil/internal/extract"
	"github.com/hargamobil/hargamobil/internal/observability"
	"github.com/hargamobil/hargamobil/internal/querylog"
	"github.com/hargamobil/hargamobil/internal/search"
	"github.com/hargamobil/hargamobil/pkg/pipeline"
)

const version = "1.0.0"

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	verbose    bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "hargamobil",
	Short: "Cari harga mobil On The Road dari pertanyaan bebas",
	Long: `hargamobil menjawab pertanyaan harga mobil dalam bahasa sehari-hari.

Tulis pertanyaan seperti "berapa harga avanza 2020 matic", dan tool ini akan:
- Mengekstrak brand, tipe, tahun, dan transmisi dari teks
- Mencari kombinasi tersebut di lembar harga OTR
- Menampilkan harga minimum, rata-rata, maksimum, dan harga baru

Semua perintah mendukung --json untuk otomasi.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load() // .env is optional

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := cfg.Observability.LogFormat
		if outputJSON {
			logFormat = "json"
		}
		logLevel := cfg.Observability.LogLevel
		if verbose {
			logLevel = "debug"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       logLevel,
			Format:      logFormat,
			ServiceName: "hargamobil",
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newDatasetCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildPipeline wires the price sheet, extractors, resolver, and audit sink
// from the loaded configuration.
func buildPipeline() (*pipeline.Pipeline, *dataset.Store, error) {
	store, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}

	model := extract.NewModelExtractor(extract.ModelConfig{
		Endpoint:  cfg.LLM.Endpoint,
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   cfg.LLM.Timeout,
	}, logger)
	rules := extract.NewRuleExtractor(store)
	coordinator := extract.NewCoordinator(model, rules, store, logger)

	sink, err := querylog.Open(cfg.QueryLog.Driver, cfg.QueryLog.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open query log: %w", err)
	}

	return pipeline.New(coordinator, search.NewResolver(store), sink, logger), store, nil
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hargamobil version %s\n", version)
		},
	}
}
