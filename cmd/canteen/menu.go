package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/spf13/cobra"
)

var (
	menuCategory string
	menuSearch   string
	menuRefresh  bool
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse today's menu",
	Long: `Menu lists the catalog, optionally narrowed to a category or a search term.

Example:
  canteen menu
  canteen menu --category Snacks
  canteen menu --search pizza`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

var menuSpecialCmd = &cobra.Command{
	Use:   "special",
	Short: "Show today's special",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, ok, err := current.menu.Special(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			current.out.Line("No special today")
			return nil
		}
		return renderFoods(current.out, []menu.Food{f})
	},
}

var menuHomeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show categories, today's special and popular picks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		screen, err := current.home.Load(cmd.Context())
		if err != nil {
			return err
		}
		out := current.out
		view := struct {
			Categories []string         `json:"categories" yaml:"categories"`
			Special    []foodView       `json:"special,omitempty" yaml:"special,omitempty"`
			Popular    []suggestionView `json:"popular" yaml:"popular"`
		}{
			Categories: screen.Categories,
			Popular:    toSuggestionViews(screen.Popular),
		}
		if screen.Special != nil {
			view.Special = toFoodViews([]menu.Food{*screen.Special})
		}
		return out.Render(view, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "%s\t%v\n", out.bold.Sprint("Categories"), screen.Categories)
			if screen.Special != nil {
				fmt.Fprintf(tw, "%s\t%s (%s)\n", out.bold.Sprint("Today's special"), screen.Special.Name, out.Money(screen.Special.EffectivePrice()))
			}
			if screen.PopularErr != nil {
				fmt.Fprintf(tw, "%s\t%s\n", out.bold.Sprint("Popular"), out.dim.Sprint("unavailable"))
				return
			}
			for _, s := range view.Popular {
				fmt.Fprintf(tw, "%s\t%s\n", out.bold.Sprint("Popular"), s.Name)
			}
		})
	},
}

func init() {
	menuCmd.Flags().StringVarP(&menuCategory, "category", "c", menu.CategoryAll, "category to show")
	menuCmd.Flags().StringVarP(&menuSearch, "search", "s", "", "match name or category")
	menuCmd.Flags().BoolVar(&menuRefresh, "refresh", false, "bypass the catalog cache")

	menuCmd.AddCommand(menuSpecialCmd)
	menuCmd.AddCommand(menuHomeCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if menuRefresh {
		if inv, ok := current.cache.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
		if _, _, err := current.menu.Load(ctx); err != nil {
			return err
		}
	}
	foods, err := current.menu.Browse(ctx, menuCategory, menuSearch)
	if err != nil {
		return err
	}
	if len(foods) == 0 {
		current.out.Line("No items match.")
		return nil
	}
	return renderFoods(current.out, foods)
}

func renderFoods(out *printer, foods []menu.Food) error {
	views := toFoodViews(foods)
	return out.Render(views, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, out.bold.Sprint("ID\tNAME\tCATEGORY\tPRICE"))
		for _, v := range views {
			name := v.Name
			if v.Special {
				name += " " + out.ok.Sprint("(special)")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, name, v.Category, out.Money(v.Price))
		}
	})
}
