package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wishlist-backend/internal/client/api"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/reaction"
)

func publicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public",
		Short: "Browse shared wishlists as a visitor",
	}

	cmd.AddCommand(showPublicCmd())
	cmd.AddCommand(reactCmd())

	return cmd
}

func showPublicCmd() *cobra.Command {
	var q item.ListQuery

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a shared wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := newClient()
			slug := args[0]

			// Category names resolve against the wishlist's own categories,
			// so the first read is unfiltered by category.
			category := q.Category
			q.Category = ""
			resp, err := c.PublicWishlist(ctx, slug, q)
			if err != nil {
				if errors.Is(err, api.ErrNotFound) {
					return fmt.Errorf("no public wishlist at %q", slug)
				}
				return err
			}
			if category != "" {
				sel, err := selectorFor(resp.Categories, category)
				if err != nil {
					return err
				}
				q.Category = sel.String()
				if resp, err = c.PublicWishlist(ctx, slug, q); err != nil {
					return err
				}
			}

			fmt.Println(TitleStyle.Render(resp.Wishlist.Title))
			if resp.Wishlist.Description != nil {
				fmt.Println(*resp.Wishlist.Description)
			}
			fmt.Println()
			return renderItemList(os.Stdout, resp.Items, resp.Total, resp.Categories)
		},
	}

	addViewFlags(cmd, &q)
	return cmd
}

func reactCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "react <item-id> heart|thumbs_up",
		Short:     "React to an item on a shared wishlist",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(reaction.KindHeart), string(reaction.KindThumbsUp)},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			resp, err := newClient().React(cmd.Context(), id, reaction.Kind(args[1]))
			if err != nil {
				if errors.Is(err, api.ErrNotFound) {
					return errors.New("item not found on any public wishlist")
				}
				return err
			}

			counts := fmt.Sprintf("♥ %d  👍 %d", resp.HeartCount, resp.ThumbsUpCount)
			if resp.Recorded {
				fmt.Println(SuccessStyle.Render("✓ Reaction recorded  " + counts))
			} else {
				fmt.Println(SubtleStyle.Render("You already reacted  " + counts))
			}
			return nil
		},
	}
}
