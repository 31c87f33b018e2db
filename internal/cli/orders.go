package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pharmago/clientkit/pkg/api"
)

var checkoutAddr struct {
	street, city, state, postal, country string
	payment                              string
	prescriptionURL                      string
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.requireAuth(); err != nil {
			return err
		}

		items := theApp.cart.Items()
		if len(items) == 0 {
			return fmt.Errorf("cart is empty")
		}

		order := api.NewOrder{
			ShippingAddress: api.Address{
				Street:     checkoutAddr.street,
				City:       checkoutAddr.city,
				State:      checkoutAddr.state,
				PostalCode: checkoutAddr.postal,
				Country:    checkoutAddr.country,
			},
			PaymentMethod:   checkoutAddr.payment,
			PrescriptionURL: checkoutAddr.prescriptionURL,
		}
		for _, item := range items {
			order.OrderItems = append(order.OrderItems, api.NewOrderItem{
				MedicineID: item.Medicine.ID,
				Quantity:   item.Quantity,
			})
		}

		placed, err := theApp.api.CreateOrder(cmd.Context(), order)
		if err != nil {
			return err
		}

		theApp.cart.Clear(cmd.Context())
		color.Green("order #%d placed, total %.2f (%s)", placed.ID, placed.TotalAmount, placed.Status)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.requireAuth(); err != nil {
			return err
		}

		page, err := theApp.api.Orders(cmd.Context(), api.ListParams{Page: 1, Size: 50})
		if err != nil {
			return err
		}
		if len(page.Content) == 0 {
			fmt.Println("no orders yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPLACED\tSTATUS\tITEMS\tTOTAL")
		for _, o := range page.Content {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\n",
				o.ID, o.OrderDate, o.Status, len(o.OrderItems), o.TotalAmount)
		}
		w.Flush()
		return nil
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.requireAuth(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		o, err := theApp.api.Order(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("order #%d  %s  %s\n", o.ID, o.OrderDate, o.Status)
		fmt.Printf("ship to: %s, %s %s %s\n",
			o.ShippingAddress.Street, o.ShippingAddress.City,
			o.ShippingAddress.State, o.ShippingAddress.PostalCode)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, item := range o.OrderItems {
			fmt.Fprintf(w, "  %s\tx%d\t%.2f\n", item.Medicine.Name, item.Quantity, item.Price)
		}
		w.Flush()
		fmt.Printf("total %.2f\n", o.TotalAmount)
		return nil
	},
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.requireAuth(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		if err := theApp.api.CancelOrder(cmd.Context(), id); err != nil {
			return err
		}
		color.Yellow("order #%d cancelled", id)
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutAddr.street, "street", "", "shipping street")
	checkoutCmd.Flags().StringVar(&checkoutAddr.city, "city", "", "shipping city")
	checkoutCmd.Flags().StringVar(&checkoutAddr.state, "state", "", "shipping state")
	checkoutCmd.Flags().StringVar(&checkoutAddr.postal, "postal", "", "shipping postal code")
	checkoutCmd.Flags().StringVar(&checkoutAddr.country, "country", "US", "shipping country")
	checkoutCmd.Flags().StringVar(&checkoutAddr.payment, "payment", "CASH_ON_DELIVERY", "payment method")
	checkoutCmd.Flags().StringVar(&checkoutAddr.prescriptionURL, "prescription", "", "prescription document URL")
	_ = checkoutCmd.MarkFlagRequired("street")
	_ = checkoutCmd.MarkFlagRequired("city")

	ordersCmd.AddCommand(orderShowCmd, orderCancelCmd)
	rootCmd.AddCommand(checkoutCmd, ordersCmd)
}
