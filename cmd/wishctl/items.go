package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wishlist-backend/internal/client/api"
	"wishlist-backend/internal/client/composer"
	"wishlist-backend/internal/client/session"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/item/view"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List and curate wishlist items",
	}

	cmd.AddCommand(listItemsCmd())
	cmd.AddCommand(addItemCmd())
	cmd.AddCommand(editItemCmd())
	cmd.AddCommand(deleteItemCmd())

	return cmd
}

// addViewFlags registers --search, --category and --sort.
func addViewFlags(cmd *cobra.Command, q *item.ListQuery) {
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "match title, description, brand or category name")
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "all, uncategorized, or a category name/id")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "newest, oldest, alpha-asc, alpha-desc, price-desc, price-asc")
}

// applyView pushes the flag values into the store's view state.
func applyView(store *session.Store, q item.ListQuery) error {
	store.SetSearch(q.Search)

	key, err := view.ParseSortKey(q.Sort)
	if err != nil {
		return fmt.Errorf("%w: %q", err, q.Sort)
	}
	store.SetSort(key)

	sel, err := selectorFor(store.Categories(), q.Category)
	if err != nil {
		return err
	}
	return store.SetCategory(sel)
}

func listItemsCmd() *cobra.Command {
	var q item.ListQuery

	cmd := &cobra.Command{
		Use:   "list <wishlist>",
		Short: "List items with optional search, category filter and sort",
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
			if err := applyView(store, q); err != nil {
				return err
			}
			return renderItems(os.Stdout, store)
		},
	}

	addViewFlags(cmd, &q)
	return cmd
}

// itemFlags are shared by add and edit.
type itemFlags struct {
	title, description, url, price, brand string
	category                              string
	imagePath, imageURL                   string
	newCategoryName, newCategoryColor     string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "item title")
	flags.StringVar(&f.description, "description", "", "description")
	flags.StringVar(&f.url, "url", "", "product link")
	flags.StringVar(&f.price, "price", "", `free-form price, e.g. "$45" or "1.299,00 TL"`)
	flags.StringVar(&f.brand, "brand", "", "brand")
	flags.StringVar(&f.category, "category", "", `category name or id, "none", or "new" to create one`)
	flags.StringVar(&f.imagePath, "image", "", "local image to upload (PNG or JPEG)")
	flags.StringVar(&f.imageURL, "image-url", "", "remote image URL")
	flags.StringVar(&f.newCategoryName, "new-category-name", "", `name of the category created by --category new`)
	flags.StringVar(&f.newCategoryColor, "new-category-color", "", "color (#rrggbb) of the new category")
}

// apply copies the flags the user set onto d.
func (f *itemFlags) apply(cmd *cobra.Command, store *session.Store, d *composer.ItemDraft) error {
	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("title", &d.Title, f.title)
	set("description", &d.Description, f.description)
	set("url", &d.URL, f.url)
	set("price", &d.Price, f.price)
	set("brand", &d.Brand, f.brand)
	set("image-url", &d.ImageURL, f.imageURL)

	if flags.Changed("category") {
		v, err := draftCategory(store, f.category)
		if err != nil {
			return err
		}
		d.Category = v
	}

	img, err := readImage(f.imagePath)
	if err != nil {
		return err
	}
	if img != nil {
		d.Image = img
	}
	return nil
}

// compose drives the composer from draft to saved item, including the
// detour through category creation when --category new was given.
func compose(ctx context.Context, comp *composer.Composer, d composer.ItemDraft, f *itemFlags) (*item.Item, error) {
	if err := comp.Update(d); err != nil {
		return nil, err
	}

	if comp.State() == composer.StateCreatingCategory {
		if strings.TrimSpace(f.newCategoryName) == "" {
			_ = comp.CancelCategory()
			return nil, errors.New("--category new needs --new-category-name")
		}
		created, err := comp.SubmitCategory(ctx, composer.CategoryDraft{Name: f.newCategoryName, Color: f.newCategoryColor})
		if err != nil {
			return nil, fmt.Errorf("failed to create category: %w", err)
		}
		fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Created category %q", created.Name)))
	}

	return comp.Submit(ctx)
}

func addItemCmd() *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add <wishlist>",
		Short: "Add an item",
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

			comp := composer.New(store, c)
			if err := comp.StartAdd(); err != nil {
				return err
			}
			d := comp.Draft()
			if err := f.apply(cmd, store, &d); err != nil {
				return err
			}

			saved, err := compose(cmd.Context(), comp, d, &f)
			if err != nil {
				return fmt.Errorf("failed to add item: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Added %q", saved.Title)))
			fmt.Println(SubtleStyle.Render(saved.ID.String()))
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func editItemCmd() *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "edit <wishlist> <item-id>",
		Short: "Edit an item; only the flags you pass change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			store, it, err := findItem(cmd.Context(), c, args[0], args[1])
			if err != nil {
				return err
			}

			comp := composer.New(store, c)
			if err := comp.StartEdit(it); err != nil {
				return err
			}
			d := comp.Draft()
			if err := f.apply(cmd, store, &d); err != nil {
				return err
			}

			saved, err := compose(cmd.Context(), comp, d, &f)
			if err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Updated %q", saved.Title)))
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func deleteItemCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <wishlist> <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authedClient()
			if err != nil {
				return err
			}
			store, it, err := findItem(cmd.Context(), c, args[0], args[1])
			if err != nil {
				return err
			}

			if !yes && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete %q?", it.Title)) {
				fmt.Println("Deletion cancelled.")
				return nil
			}

			if err := c.DeleteItem(cmd.Context(), it.ID); err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}
			store.ApplyDelete(it.ID)
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("✓ Deleted %q (%d items left)", it.Title, len(store.Items()))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func findItem(ctx context.Context, c *api.Client, wishlistRef, itemRef string) (*session.Store, item.Item, error) {
	id, err := uuid.Parse(itemRef)
	if err != nil {
		return nil, item.Item{}, fmt.Errorf("invalid item id %q", itemRef)
	}
	store, err := openStore(ctx, c, wishlistRef)
	if err != nil {
		return nil, item.Item{}, err
	}
	it, ok := store.Item(id)
	if !ok {
		return nil, item.Item{}, fmt.Errorf("item %s is not in %q", id, store.Wishlist().Title)
	}
	return store, it, nil
}
