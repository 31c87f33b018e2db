package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showCart()
	},
}

var cartAddQty int

var cartAddCmd = &cobra.Command{
	Use:   "add <medicine-id>",
	Short: "Add a medicine to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medicine id %q", args[0])
		}

		medicine, err := theApp.api.Medicine(cmd.Context(), id)
		if err != nil {
			return err
		}

		theApp.cart.Add(cmd.Context(), *medicine, cartAddQty)
		color.Green("%s x%d in cart (%d item(s) total)",
			medicine.Name, theApp.cart.ItemQuantity(id), theApp.cart.TotalItems())
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <medicine-id>",
	Short: "Remove a medicine from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medicine id %q", args[0])
		}
		theApp.cart.Remove(cmd.Context(), id)
		return showCart()
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <medicine-id> <quantity>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medicine id %q", args[0])
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		theApp.cart.UpdateQuantity(cmd.Context(), id, qty)
		return showCart()
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp.cart.Clear(cmd.Context())
		color.Yellow("cart cleared")
		return nil
	},
}

func showCart() error {
	items := theApp.cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tUNIT\tLINE")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.2f\n",
			item.Medicine.ID, item.Medicine.Name, item.Quantity,
			item.Medicine.Price, item.Medicine.Price*float64(item.Quantity))
	}
	w.Flush()
	fmt.Printf("%d item(s), total %.2f\n", theApp.cart.TotalItems(), theApp.cart.TotalAmount())
	return nil
}

func init() {
	cartAddCmd.Flags().IntVar(&cartAddQty, "qty", 1, "quantity to add")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartSetCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
