package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/catalog"
)

var (
	catalogSearch       string
	catalogCategory     string
	catalogManufacturer string
	catalogMinPrice     float64
	catalogMaxPrice     float64
	catalogOTCOnly      bool
	catalogRxOnly       bool
	catalogInStock      bool
	catalogSort         string
	catalogPage         int
	catalogPerPage      int
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the medicine catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var medicines []api.Medicine
		if catalogSearch != "" {
			found, err := theApp.api.SearchMedicines(ctx, catalogSearch)
			if err != nil {
				return err
			}
			medicines = found
		} else {
			page, err := theApp.api.Medicines(ctx, api.ListParams{Page: 1, Size: 200})
			if err != nil {
				return err
			}
			medicines = page.Content
		}

		filter := catalog.Filter{
			Category:     catalogCategory,
			Manufacturer: catalogManufacturer,
			MinPrice:     catalogMinPrice,
			MaxPrice:     catalogMaxPrice,
			InStockOnly:  catalogInStock,
		}
		switch {
		case catalogOTCOnly:
			filter.Prescription = catalog.PrescriptionOTC
		case catalogRxOnly:
			filter.Prescription = catalog.PrescriptionOnly
		}

		medicines = catalog.Apply(medicines, filter)
		medicines = catalog.Sort(medicines, catalog.SortOrder(catalogSort))
		medicines = catalog.Paginate(medicines, catalogPage, catalogPerPage)
		if len(medicines) == 0 {
			fmt.Println("no medicines match")
			return nil
		}

		printMedicines(medicines)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := theApp.api.Categories(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Println(c)
		}
		return nil
	},
}

func printMedicines(medicines []api.Medicine) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tRX")
	for _, m := range medicines {
		rx := ""
		if m.RequiresPrescription {
			rx = color.RedString("Rx")
		}
		stock := fmt.Sprintf("%d", m.StockQuantity)
		if m.StockQuantity == 0 {
			stock = color.YellowString("out")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\n", m.ID, m.Name, m.Category, m.Price, stock, rx)
	}
	w.Flush()
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "search name and description")
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "filter by category")
	catalogCmd.Flags().StringVar(&catalogManufacturer, "manufacturer", "", "filter by manufacturer")
	catalogCmd.Flags().Float64Var(&catalogMinPrice, "min-price", 0, "minimum price")
	catalogCmd.Flags().Float64Var(&catalogMaxPrice, "max-price", 0, "maximum price (0 = no bound)")
	catalogCmd.Flags().BoolVar(&catalogOTCOnly, "otc", false, "over-the-counter items only")
	catalogCmd.Flags().BoolVar(&catalogRxOnly, "rx", false, "prescription items only")
	catalogCmd.Flags().BoolVar(&catalogInStock, "in-stock", false, "hide out-of-stock items")
	catalogCmd.Flags().StringVar(&catalogSort, "sort", "", "sort order: name, price, price-desc")
	catalogCmd.Flags().IntVar(&catalogPage, "page", 1, "page number")
	catalogCmd.Flags().IntVar(&catalogPerPage, "per-page", 20, "items per page")
	catalogCmd.MarkFlagsMutuallyExclusive("otc", "rx")

	rootCmd.AddCommand(catalogCmd, categoriesCmd)
}
