package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wishlist-backend/internal/client/composer"
	"wishlist-backend/internal/domains/category"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage the categories of a wishlist",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <wishlist>",
		Short: "List categories with item counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}
			if len(store.Categories()) == 0 {
				fmt.Println(SubtleStyle.Render("No categories yet. Use 'wishctl categories add' to create one."))
				return nil
			}
			return renderCategories(os.Stdout, store)
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <wishlist> <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := composer.CategoryDraft{Name: args[1], Color: color}
			if err := draft.Validate(); err != nil {
				return err
			}

			c, err := authedClient()
			if err != nil {
				return err
			}
			wl, err := resolveWishlist(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}

			req := category.CreateCategoryReq{Name: strings.TrimSpace(draft.Name)}
			if color != "" {
				req.Color = &color
			}
			created, err := c.CreateCategory(cmd.Context(), wl.ID, req)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Created category %q", created.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "category color (#rrggbb)")
	return cmd
}

func renameCategoryCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "update <wishlist> <category> [new-name]",
		Short: "Rename a category or change its color",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}
			id, err := categoryRef(store.Categories(), args[1])
			if err != nil {
				return err
			}

			var req category.UpdateCategoryReq
			if len(args) == 3 {
				req.Name = &args[2]
			}
			if color != "" {
				req.Color = &color
			}
			updated, err := c.UpdateCategory(cmd.Context(), id, req)
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Updated category %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "new color (#rrggbb)")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <wishlist> <category>",
		Short: "Delete a category; its items become uncategorized",
		Long: `Delete a category. Items in it are kept and moved to uncategorized.
A filter on the deleted category falls back to all items.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}
			id, err := categoryRef(store.Categories(), args[1])
			if err != nil {
				return err
			}
			cat, _ := store.Category(id)
			affected := store.Counts().ByCategory[id]

			prompt := fmt.Sprintf("Delete category %q? %d items will become uncategorized.", cat.Name, affected)
			if !yes && !confirm(os.Stdin, os.Stdout, prompt) {
				fmt.Println("Deletion cancelled.")
				return nil
			}

			moved, err := store.DeleteCategory(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Deleted category %q, %d items moved to uncategorized", cat.Name, moved)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}
