package main

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	recommendapp "github.com/canteen/client/internal/application/recommend"
	"github.com/canteen/client/internal/domain/recommend"
	"github.com/spf13/cobra"
)

var (
	recommendLimit      int
	recommendWindowDays int
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"rec"},
	Short:   "Popular picks and items ordered together",
}

var recommendPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Show the most ordered items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := current.recommend.Popular(cmd.Context(), recommend.PopularQuery{
			Limit:      recommendLimit,
			WindowDays: recommendWindowDays,
		})
		if err != nil {
			return err
		}
		return renderSuggestions(current.out, items)
	},
}

var recommendSimilarCmd = &cobra.Command{
	Use:   "similar <item-name>",
	Short: "Show items often ordered with an item",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := current.recommend.Similar(cmd.Context(), recommend.SimilarQuery{
			ItemName: strings.Join(args, " "),
			Limit:    recommendLimit,
		})
		if err != nil {
			return err
		}
		return renderSuggestions(current.out, items)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the canteen assistant what to eat",
	Long: `Chat sends one message when given one, otherwise it reads messages from
standard input until EOF. Type /reset to start over.`,
	RunE: runChat,
}

func init() {
	recommendCmd.PersistentFlags().IntVarP(&recommendLimit, "limit", "n", 0, "number of items, 0 for the default")
	recommendPopularCmd.Flags().IntVar(&recommendWindowDays, "window-days", 0, "only count orders from the last n days")

	recommendCmd.AddCommand(recommendPopularCmd)
	recommendCmd.AddCommand(recommendSimilarCmd)
}

func renderSuggestions(out *printer, items []recommend.Suggestion) error {
	views := toSuggestionViews(items)
	if len(views) == 0 && out.format == outputTable {
		out.Line("No recommendations yet")
		return nil
	}
	return out.Render(views, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, out.bold.Sprint("NAME\tORDERS\tID\tPRICE"))
		for _, v := range views {
			if !v.Available {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", v.Name, v.OrderCount, out.dim.Sprint("-"), out.dim.Sprint("not on the menu"))
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", v.Name, v.OrderCount, v.ItemID, out.Money(v.Price))
		}
	})
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	chat := current.chat
	out := cmd.OutOrStdout()
	if !chat.Available(ctx) {
		current.out.Error("The assistant is offline right now")
	}

	if len(args) > 0 {
		reply, err := chat.Send(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply.Content)
		return nil
	}

	fmt.Fprintln(out, recommendapp.Greeting)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/reset":
			chat.Reset()
			fmt.Fprintln(out, recommendapp.Greeting)
			continue
		case "/quit", "/exit":
			return nil
		}
		reply, err := chat.Send(ctx, line)
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			continue
		}
		fmt.Fprintln(out, reply.Content)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
