package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

// =============================================================================
// VALIDATE
// =============================================================================

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the bundled catalog",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	store, err := catalogLoader()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	restaurants, err := store.ListRestaurants(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tITEMS\tWITH VARIANTS")
	for _, r := range restaurants {
		items, err := store.GetMenu(ctx, r.ID)
		if err != nil {
			return err
		}
		withVariants := 0
		for _, item := range items {
			if item.HasVariants() {
				withVariants++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", r.ID, r.Name, len(items), withVariants)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d restaurants\n", len(restaurants))
	return nil
}

// =============================================================================
// SEARCH
// =============================================================================

func newSearchCmd() *cobra.Command {
	var suggest bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search restaurants by name",
		Long: `Matches restaurant names case-insensitively by substring.

Without --suggest an empty query lists every restaurant. With --suggest the
result is capped like the autocomplete dropdown and an empty query yields
nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := ""
			if len(args) == 1 {
				q = args[0]
			}
			store, err := catalogLoader()
			if err != nil {
				return err
			}
			svc := services.NewCatalogService(store)

			search := svc.Browse
			if suggest {
				search = svc.Suggest
			}
			matches, err := search(cmd.Context(), q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No results. Try a different search.")
				return nil
			}
			for _, r := range matches {
				fmt.Fprintf(out, "%s\t%s\n", r.ID, r.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&suggest, "suggest", false, "Return autocomplete suggestions instead of the browse list")
	return cmd
}

// =============================================================================
// RANK
// =============================================================================

func newRankCmd() *cobra.Command {
	var (
		by  string
		top int
	)

	cmd := &cobra.Command{
		Use:   "rank <restaurant-id>",
		Short: "Print a ranking of a restaurant's menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative")
			}
			store, err := catalogLoader()
			if err != nil {
				return err
			}
			svc := services.NewCatalogService(store)

			restaurant, view, err := svc.Ranking(cmd.Context(), args[0], services.RankingKind(strings.ToLower(by)), top, nil)
			if err != nil {
				return err
			}
			return printRanking(cmd, restaurant.Name, view)
		},
	}
	cmd.Flags().StringVar(&by, "by", string(services.RankByProtein), "Ranking: protein, ratio or calories")
	cmd.Flags().IntVar(&top, "top", services.DefaultHighlightTop, "Number of leading items to mark")
	return cmd
}

func printRanking(cmd *cobra.Command, restaurant string, view services.RankingView) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n%s\n\n", restaurant, view.Title, view.Description)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := "RANK\tNAME\tCAL\tPROTEIN"
	if view.ShowRatio {
		header += "\tCAL:PROTEIN"
	}
	fmt.Fprintln(w, header)

	for _, card := range view.Items {
		mark := " "
		if card.TopRanked {
			mark = "*"
		}
		line := fmt.Sprintf("%s%s\t%s\t%s\t%sg", card.Rank, mark, card.Name,
			utils.FormatNumber(card.Calories), utils.FormatNumber(card.Protein))
		if view.ShowRatio {
			ratio := utils.Placeholder
			if card.RatioLabel != "" {
				ratio = card.RatioLabel
			}
			line += "\t" + ratio
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}
