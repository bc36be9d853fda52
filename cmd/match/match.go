// Package match implements the command that scores a requirement text
// against the product catalog and suggests a bid price.
package match

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/orchestrarfp/gotender/cmd/common"
	"github.com/orchestrarfp/gotender/internal/doctext"
	"github.com/orchestrarfp/gotender/internal/match"
	"github.com/orchestrarfp/gotender/internal/pricing"
)

// errNoQuery is returned when neither a query argument nor a file is given.
var errNoQuery = errors.New("provide a requirement text argument or --file")

// Command returns the match command.
func Command() *cobra.Command {
	var (
		file      string
		basePrice float64
	)

	cmd := &cobra.Command{
		Use:   "match [requirement text]",
		Short: "Match a requirement against the product catalog",
		Long: `Score a free-text requirement (or an uploaded tender document)
against the configured product catalog and suggest a bid price.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			query, err := resolveQuery(args, file)
			if err != nil {
				return err
			}

			price := deps.Config.Pricing.BasePrice
			if basePrice > 0 {
				price = basePrice
			}

			result := match.Match(query, deps.Config.Catalog)
			suggestion := pricing.Suggest(result.BestPercent, price)

			render(result, suggestion)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read the requirement from a document (.pdf or .txt)")
	cmd.Flags().Float64Var(&basePrice, "base-price", 0, "override the configured base price")

	return cmd
}

// resolveQuery picks the requirement text from the argument or the file.
func resolveQuery(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read requirement file: %w", err)
		}
		return doctext.FromBytes(data, file), nil
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return "", errNoQuery
	}

	return query, nil
}

// render prints the catalog ranking and the price suggestion.
func render(result match.Result, suggestion pricing.Suggestion) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Match %", "Product"})
	for _, entry := range result.Top {
		t.AppendRow(table.Row{entry.Percent, entry.Product})
	}
	t.Render()

	fmt.Printf("\nSuggested price: %.0f (score %.2f/10)\n", suggestion.Price, suggestion.Score)
	fmt.Println(suggestion.Advice)
}
