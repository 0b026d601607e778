package main

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/canteen/client/internal/domain/order"
	"github.com/spf13/cobra"
)

var (
	boardFilter string
	boardWatch  bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Run the counter: order board, kitchen and analytics",
	Long:  `Admin commands need a session logged in with --role admin.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return current.auth.RequireAdmin()
	},
}

var adminBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the order board",
	Long: `Board lists orders on one tab with the count of every tab. With --watch
the board refreshes until interrupted.

Example:
  canteen admin board --filter pending
  canteen admin board --watch`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

var adminAdvanceCmd = &cobra.Command{
	Use:   "advance <order-id>",
	Short: "Move an order to its next status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		next, err := current.board.Advance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		current.out.Success(fmt.Sprintf("Order %s is now %s", args[0], next))
		return nil
	},
}

var adminKitchenCmd = &cobra.Command{
	Use:   "kitchen",
	Short: "Show the kitchen queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := current.board.Kitchen(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			current.out.Line("The kitchen queue is empty")
			return nil
		}
		return renderOrders(current.out, orders)
	},
}

var adminKitchenSetCmd = &cobra.Command{
	Use:   "set <order-id> <status>",
	Short: "Set an order's status from the kitchen",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := order.ParseStatus(args[1])
		if err := current.board.SetKitchenStatus(cmd.Context(), args[0], status); err != nil {
			return err
		}
		current.out.Success(fmt.Sprintf("Order %s is now %s", args[0], status))
		return nil
	},
}

var adminAnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the order summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := current.board.Analytics(cmd.Context())
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(stats))
		for k := range stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return current.out.Render(stats, func(tw *tabwriter.Writer) {
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%v\n", k, stats[k])
			}
		})
	},
}

func init() {
	adminBoardCmd.Flags().StringVarP(&boardFilter, "filter", "f", string(order.FilterAll), "all, pending, accepted, preparing or ready")
	adminBoardCmd.Flags().BoolVarP(&boardWatch, "watch", "w", false, "keep refreshing until interrupted")

	adminKitchenCmd.AddCommand(adminKitchenSetCmd)

	adminCmd.AddCommand(adminBoardCmd)
	adminCmd.AddCommand(adminAdvanceCmd)
	adminCmd.AddCommand(adminKitchenCmd)
	adminCmd.AddCommand(adminAnalyticsCmd)
}

type boardView struct {
	Filter string         `json:"filter" yaml:"filter"`
	Counts map[string]int `json:"counts" yaml:"counts"`
	Orders []orderView    `json:"orders" yaml:"orders"`
}

func runBoard(cmd *cobra.Command, args []string) error {
	filter, ok := order.ParseFilter(boardFilter)
	if !ok {
		return fmt.Errorf("unknown filter %q", boardFilter)
	}
	ctx := cmd.Context()
	if _, err := current.board.Refresh(ctx); err != nil {
		return err
	}
	if err := renderBoard(current.out, filter); err != nil {
		return err
	}
	if !boardWatch {
		return nil
	}

	w := current.board.Watch(ctx, func(*order.Board) {
		current.out.Line("%s", current.out.dim.Sprint("refreshed "+time.Now().Format("15:04:05")))
		if err := renderBoard(current.out, filter); err != nil {
			current.logger.Sugar().Warnf("render board: %v", err)
		}
	})
	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.Stop(stopCtx)
}

func renderBoard(out *printer, filter order.Filter) error {
	v := current.board.View(filter)
	view := boardView{
		Filter: string(v.Filter),
		Counts: make(map[string]int, len(v.Counts)),
		Orders: toOrderViews(v.Orders),
	}
	for f, n := range v.Counts {
		view.Counts[string(f)] = n
	}
	return out.Render(view, func(tw *tabwriter.Writer) {
		for _, f := range order.Filters {
			label := fmt.Sprintf("%s (%d)", f, v.Counts[f])
			if f == filter {
				label = out.bold.Sprint(label)
			}
			fmt.Fprintf(tw, "%s\t", label)
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, out.bold.Sprint("ID\tCUSTOMER\tSTATUS\tTABLE\tITEMS\tNEXT"))
		for i, o := range v.Orders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
				o.ID, o.CustomerName, out.Status(o.Status), o.TableNumber, itemSummary(view.Orders[i].Items), o.Status.NextAction())
		}
	})
}
