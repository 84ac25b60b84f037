package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/shoppy/wrapped/internal/output"
	"github.com/shoppy/wrapped/internal/persona"
	"github.com/shoppy/wrapped/internal/store"
	"github.com/shoppy/wrapped/internal/wrapped"
)

var (
	wrappedOrders    string
	wrappedDB        string
	wrappedOutput    string
	wrappedModel     string
	wrappedNoPersona bool
	wrappedAvgSpent  float64
	wrappedAvgSaved  float64
	wrappedSeed      int64
)

var wrappedCmd = &cobra.Command{
	Use:   "wrapped",
	Short: "Generate your shopping wrapped from an order export",
	Long: `Generate a wrapped report from an exported order history. Reads a
newline-delimited JSON order export, derives purchase, savings, vendor and
spending statistics, updates your shopping streak, asks an AI for a shopping
persona, and writes a markdown report.`,
	RunE: runWrapped,
}

func init() {
	rootCmd.AddCommand(wrappedCmd)

	wrappedCmd.Flags().StringVarP(&wrappedOrders, "orders", "o", "", "Path to the order export (newline-delimited JSON)")
	wrappedCmd.Flags().StringVar(&wrappedDB, "db", "shoppy-wrapped.duckdb", "Path to the local database used for streak tracking")
	wrappedCmd.Flags().StringVar(&wrappedOutput, "out", ".", "Directory to write the report to")
	wrappedCmd.Flags().StringVar(&wrappedModel, "model", "openai/gpt-4o-mini", "OpenRouter model for persona generation")
	wrappedCmd.Flags().BoolVar(&wrappedNoPersona, "no-persona", false, "Skip the AI persona call and use the fallback persona")
	wrappedCmd.Flags().Float64Var(&wrappedAvgSpent, "avg-spent", 0, "Average-shopper spend baseline (default 500)")
	wrappedCmd.Flags().Float64Var(&wrappedAvgSaved, "avg-saved", 0, "Average-shopper savings baseline (default 100)")
	wrappedCmd.Flags().Int64Var(&wrappedSeed, "seed", 0, "Seed for the decorative vendor percentiles (0 = random)")
	wrappedCmd.MarkFlagRequired("orders")
}

func runWrapped(cmd *cobra.Command, args []string) error {
	ordersPath, err := resolveOrdersPath(wrappedOrders)
	if err != nil {
		return err
	}

	fmt.Printf("Reading orders from: %s\n", ordersPath)

	st, err := store.Open(wrappedDB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	gen := buildGenerator()

	pipeline := wrapped.New(st, gen, wrapped.Config{
		OrdersPath:  ordersPath,
		AvgSpent:    wrappedAvgSpent,
		AvgSaved:    wrappedAvgSaved,
		SkipPersona: wrappedNoPersona || gen == nil,
		Seed:        wrappedSeed,
	})

	summary, runStats, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d orders (%d line items)\n", runStats.OrdersLoaded, runStats.LineItems)
	fmt.Printf("Products purchased: %d\n", summary.Purchase.TotalBought)
	fmt.Printf("Total spent: $%.2f, total saved: $%.2f\n", summary.Money.TotalSpent, summary.Purchase.TotalSaved)
	if summary.Streak.Count > 0 {
		fmt.Printf("Shopping streak: %d day(s)\n", summary.Streak.Count)
	}
	if runStats.StreakWarning != nil {
		fmt.Printf("Warning: %v\n", runStats.StreakWarning)
	}
	fmt.Printf("Persona status: %s\n", runStats.PersonaStatus)

	gen2 := output.NewGenerator(wrappedOutput)
	reportPath, err := gen2.Generate(summary)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	fmt.Printf("Wrote report: %s\n", reportPath)
	return nil
}

// buildGenerator returns nil when persona generation is disabled or no API
// key is configured; the run then falls back to the built-in persona instead
// of failing, matching how the product behaves without credentials.
func buildGenerator() persona.Generator {
	if wrappedNoPersona {
		return nil
	}

	client, err := persona.NewClient(persona.Config{
		Model:   wrappedModel,
		Timeout: 45 * time.Second,
	})
	if err != nil {
		fmt.Printf("Persona generation disabled: %v\n", err)
		return nil
	}

	fmt.Printf("Using OpenRouter model: %s\n", wrappedModel)
	return client
}

func resolveOrdersPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("orders file does not exist: %w", err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("orders path is a directory: %s", absPath)
	}

	return absPath, nil
}
