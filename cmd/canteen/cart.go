package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var cartNotes string

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and change your cart",
	Long: `Cart changes apply locally first. When you are logged in each change is
sent to the canteen and undone if the canteen rejects it.

Example:
  canteen cart add 7 --notes "extra spicy"
  canteen cart remove 7
  canteen cart show`,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart with totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showCart(cmd)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Add one unit of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.cart.Add(cmd.Context(), args[0], cartNotes); err != nil {
			return err
		}
		return showCart(cmd)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Take one unit of an item out",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.cart.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		return showCart(cmd)
	},
}

var cartDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Remove an item whatever its quantity (login required)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.cart.RemoveCompletely(cmd.Context(), args[0]); err != nil {
			return err
		}
		return showCart(cmd)
	},
}

var cartNotesCmd = &cobra.Command{
	Use:   "notes <item-id> <notes>",
	Short: "Replace the notes of an item in the cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !current.cart.UpdateNotes(cmd.Context(), args[0], args[1]) {
			return fmt.Errorf("item %s is not in the cart", args[0])
		}
		return showCart(cmd)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.cart.Clear(cmd.Context()); err != nil {
			return err
		}
		return showCart(cmd)
	},
}

func init() {
	cartAddCmd.Flags().StringVar(&cartNotes, "notes", "", "customization for this item")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartDeleteCmd)
	cartCmd.AddCommand(cartNotesCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func showCart(cmd *cobra.Command) error {
	catalog, err := current.menu.Catalog(cmd.Context())
	if err != nil {
		return err
	}
	view := toCartView(current.cart.Summary(catalog))
	out := current.out
	if len(view.Lines) == 0 && out.format == outputTable {
		out.Line("Your cart is empty")
		return nil
	}
	return out.Render(view, func(tw *tabwriter.Writer) {
		renderCartTable(tw, out, view)
	})
}

func renderCartTable(tw *tabwriter.Writer, out *printer, view cartView) {
	fmt.Fprintln(tw, out.bold.Sprint("ID\tITEM\tQTY\tTOTAL"))
	for _, l := range view.Lines {
		name := l.Name
		if l.Notes != "" {
			name += " " + out.dim.Sprint("("+l.Notes+")")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.ItemID, name, l.Quantity, out.Money(l.LineTotal))
	}
	fmt.Fprintf(tw, "\tSubtotal\t\t%s\n", out.Money(view.Subtotal))
	fmt.Fprintf(tw, "\tPlatform fee\t\t%s\n", out.Money(view.PlatformFee))
	fmt.Fprintf(tw, "\t%s\t\t%s\n", out.bold.Sprint("Total"), out.bold.Sprint(out.Money(view.GrandTotal)))
}
