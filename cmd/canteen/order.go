package main

import (
	"fmt"
	"text/tabwriter"

	orderapp "github.com/canteen/client/internal/application/order"
	"github.com/canteen/client/internal/domain/order"
	"github.com/spf13/cobra"
)

var (
	orderTable   int
	orderPayment string
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and follow your orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place the cart as an order",
	Long: `Place sends the cart to the canteen. Every sixth order gets a free
complementary item.

Example:
  canteen order place --table 4 --payment online`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.auth.RequireCustomer(); err != nil {
			return err
		}
		res, err := current.placement.Place(cmd.Context(), orderapp.PlaceOrderRequest{
			TableNumber:   orderTable,
			PaymentMethod: order.PaymentMethod(orderPayment),
		})
		if err != nil {
			return err
		}
		out := current.out
		view := struct {
			Order         orderView `json:"order" yaml:"order"`
			Cart          cartView  `json:"cart" yaml:"cart"`
			Complementary bool      `json:"complementary" yaml:"complementary"`
		}{toOrderView(*res.Order), toCartView(res.Summary), res.Complementary}
		if err := out.Render(view, func(tw *tabwriter.Writer) {
			renderCartTable(tw, out, view.Cart)
		}); err != nil {
			return err
		}
		out.Success("Order placed successfully")
		if res.Complementary {
			out.Success(orderapp.MsgComplementary)
		}
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your orders, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := current.history.MyOrders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			current.out.Line("You have not placed any orders yet")
			return nil
		}
		return renderOrders(current.out, orders)
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := current.history.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderOrders(current.out, []order.Order{*o})
	},
}

var orderTrackCmd = &cobra.Command{
	Use:   "track <order-id>",
	Short: "Follow an order until it is ready",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := current.out
		var seen order.Status
		last, err := current.history.Track(cmd.Context(), args[0], func(o order.Order) {
			if o.Status == seen {
				return
			}
			seen = o.Status
			out.Line("Order %s: %s", o.ID, out.Status(o.Status))
		})
		if err != nil && cmd.Context().Err() == nil {
			return err
		}
		if last != nil && last.Status.IsFinal() {
			out.Success("Order " + last.ID + " is " + last.Status.String())
		}
		return nil
	},
}

var orderEligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "Check whether your next order earns a free item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eligible := current.placement.Eligible(cmd.Context())
		view := struct {
			Complementary bool `json:"complementary" yaml:"complementary"`
		}{eligible}
		return current.out.Render(view, func(tw *tabwriter.Writer) {
			if eligible {
				fmt.Fprintln(tw, "Your next order comes with a free complementary item")
				return
			}
			fmt.Fprintln(tw, "No complementary item on your next order")
		})
	},
}

func init() {
	orderPlaceCmd.Flags().IntVarP(&orderTable, "table", "t", 0, "table number")
	orderPlaceCmd.Flags().StringVar(&orderPayment, "payment", string(order.PaymentCash), "cash or online")
	_ = orderPlaceCmd.MarkFlagRequired("table")

	orderCmd.AddCommand(orderPlaceCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderTrackCmd)
	orderCmd.AddCommand(orderEligibilityCmd)
}

func renderOrders(out *printer, orders []order.Order) error {
	views := toOrderViews(orders)
	return out.Render(views, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, out.bold.Sprint("ID\tSTATUS\tTABLE\tAMOUNT\tITEMS\tPLACED"))
		for i, v := range views {
			placed := ""
			if v.CreatedAt != nil {
				placed = v.CreatedAt.Local().Format("Jan 2 15:04")
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
				v.ID, out.Status(orders[i].Status), v.TableNumber, out.Money(v.Amount), itemSummary(v.Items), out.dim.Sprint(placed))
		}
	})
}
