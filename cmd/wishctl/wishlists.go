package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/wishlist"
)

func wishlistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wishlists",
		Aliases: []string{"wl"},
		Short:   "Manage your wishlists",
	}

	cmd.AddCommand(listWishlistsCmd())
	cmd.AddCommand(createWishlistCmd())
	cmd.AddCommand(showWishlistCmd())
	cmd.AddCommand(updateWishlistCmd())
	cmd.AddCommand(deleteWishlistCmd())
	cmd.AddCommand(logoCmd())
	cmd.AddCommand(exportCmd())

	return cmd
}

func listWishlistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your wishlists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			all, err := c.ListWishlists(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list wishlists: %w", err)
			}
			if len(all) == 0 {
				fmt.Println(SubtleStyle.Render("No wishlists yet. Use 'wishctl wishlists create <title>' to start one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				HeaderStyle.Render("ID"),
				HeaderStyle.Render("Title"),
				HeaderStyle.Render("Slug"),
				HeaderStyle.Render("Visibility"),
				HeaderStyle.Render("Items"))
			for _, wl := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", wl.ID, wl.Title, wl.Slug, visibility(wl), wl.ItemCount)
			}
			return nil
		},
	}
}

func createWishlistCmd() *cobra.Command {
	var (
		description string
		private     bool
		language    string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}

			req := wishlist.CreateWishlistRequest{Title: args[0]}
			if description != "" {
				req.Description = &description
			}
			if cmd.Flags().Changed("private") {
				public := !private
				req.IsPublic = &public
			}
			if language != "" {
				req.Language = &language
			}

			wl, err := c.CreateWishlist(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create wishlist: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Created %q", wl.Title)))
			fmt.Println(SubtleStyle.Render("Share slug: " + wl.Slug))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "wishlist description")
	cmd.Flags().BoolVar(&private, "private", false, "hide from visitors")
	cmd.Flags().StringVar(&language, "language", "", "page language (tr, en, de, fr, es)")

	return cmd
}

func showWishlistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <wishlist>",
		Short: "Show a wishlist with its categories",
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

			wl := store.Wishlist()
			fmt.Println(TitleStyle.Render(wl.Title))
			if wl.Description != nil {
				fmt.Println(*wl.Description)
			}
			fmt.Println(SubtleStyle.Render(fmt.Sprintf("%s · %s · %s · %d items",
				wl.Slug, visibility(wl), wl.Language, len(store.Items()))))
			fmt.Println()
			return renderCategories(os.Stdout, store)
		},
	}
}

func updateWishlistCmd() *cobra.Command {
	var (
		title, description, language string
		public, private              bool
	)

	cmd := &cobra.Command{
		Use:   "update <wishlist>",
		Short: "Change title, description, visibility or language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			wl, err := resolveWishlist(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}

			var req wishlist.UpdateWishlistRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("language") {
				req.Language = &language
			}
			switch {
			case public && private:
				return fmt.Errorf("--public and --private are exclusive")
			case public, private:
				v := public
				req.IsPublic = &v
			}

			updated, err := c.UpdateWishlist(cmd.Context(), wl.ID, req)
			if err != nil {
				return fmt.Errorf("failed to update wishlist: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Updated %q (%s)", updated.Title, visibility(*updated))))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title (the slug never changes)")
	cmd.Flags().StringVar(&description, "description", "", "new description, empty to clear")
	cmd.Flags().StringVar(&language, "language", "", "page language")
	cmd.Flags().BoolVar(&public, "public", false, "make visible to visitors")
	cmd.Flags().BoolVar(&private, "private", false, "hide from visitors")

	return cmd
}

func deleteWishlistCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <wishlist>",
		Short: "Delete a wishlist with all its items and categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			wl, err := resolveWishlist(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}

			prompt := fmt.Sprintf("Delete %q and its %d items?", wl.Title, wl.ItemCount)
			if !yes && !confirm(os.Stdin, os.Stdout, prompt) {
				fmt.Println("Deletion cancelled.")
				return nil
			}

			if err := c.DeleteWishlist(cmd.Context(), wl.ID); err != nil {
				return fmt.Errorf("failed to delete wishlist: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Deleted %q", wl.Title)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func logoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logo <wishlist> <image-file>",
		Short: "Upload the wishlist logo (PNG or JPEG, max 5MB)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			wl, err := resolveWishlist(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read logo: %w", err)
			}

			updated, err := c.UploadLogo(cmd.Context(), wl.ID, filepath.Base(args[1]), data)
			if err != nil {
				return fmt.Errorf("failed to upload logo: %w", err)
			}
			fmt.Println(SuccessStyle.Render("✓ Logo updated"))
			if updated.LogoURL != nil {
				fmt.Println(SubtleStyle.Render(*updated.LogoURL))
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		output string
		q      item.ListQuery
	)

	cmd := &cobra.Command{
		Use:   "export <wishlist>",
		Short: "Export the item list to an Excel file",
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
			if q.Category != "" {
				sel, err := selectorFor(store.Categories(), q.Category)
				if err != nil {
					return err
				}
				q.Category = sel.String()
			}

			wl := store.Wishlist()
			data, err := c.ExportWishlist(cmd.Context(), wl.ID, q)
			if err != nil {
				return fmt.Errorf("failed to export wishlist: %w", err)
			}

			if output == "" {
				output = wl.Slug + ".xlsx"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Println(SuccessStyle.Render("✓ Exported to " + output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <slug>.xlsx)")
	addViewFlags(cmd, &q)
	return cmd
}

func visibility(w wishlist.Wishlist) string {
	if w.IsPublic {
		return "public"
	}
	return "private"
}
