package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"wishlist-backend/internal/client/api"
	"wishlist-backend/internal/client/composer"
	"wishlist-backend/internal/client/session"
	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/item/view"
	"wishlist-backend/internal/domains/user"
	"wishlist-backend/internal/domains/wishlist"
)

var errNotSignedIn = errors.New("not signed in, run 'wishctl auth signin' first")

// newClient builds an API client from config. Session changes are persisted
// so the token survives between invocations.
func newClient() *api.Client {
	c := api.New(viper.GetString(keyAPIURL), api.WithToken(viper.GetString(keyToken)))
	c.OnSessionChange(func(s *user.Session) {
		if s == nil {
			viper.Set(keyToken, "")
		} else {
			viper.Set(keyToken, s.AccessToken)
			viper.Set(keyEmail, s.User.Email)
		}
		if err := saveConfig(); err != nil {
			fmt.Fprintln(os.Stderr, WarningStyle.Render("Could not save session: "+err.Error()))
		}
	})
	return c
}

func authedClient() (*api.Client, error) {
	c := newClient()
	if c.Token() == "" {
		return nil, errNotSignedIn
	}
	return c, nil
}

// resolveWishlist accepts a wishlist id, slug or exact title.
func resolveWishlist(ctx context.Context, c *api.Client, ref string) (*wishlist.Wishlist, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return c.GetWishlist(ctx, id)
	}

	all, err := c.ListWishlists(ctx)
	if err != nil {
		return nil, err
	}
	var matches []wishlist.Wishlist
	for _, w := range all {
		if w.Slug == ref || strings.EqualFold(w.Title, ref) {
			matches = append(matches, w)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no wishlist matches %q", ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d wishlists, use the id or slug", ref, len(matches))
	}
}

func openStore(ctx context.Context, c *api.Client, ref string) (*session.Store, error) {
	w, err := resolveWishlist(ctx, c, ref)
	if err != nil {
		return nil, err
	}
	return session.Load(ctx, c, *w)
}

// categoryRef resolves a category flag: an id or a name, case-insensitive.
func categoryRef(categories []category.Category, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		for _, c := range categories {
			if c.ID == id {
				return id, nil
			}
		}
		return uuid.Nil, fmt.Errorf("no category with id %s", id)
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no category named %q", ref)
}

// selectorFor maps --category to a view selector. "all", "uncategorized"
// and the empty string keep their meaning; anything else names a category.
func selectorFor(categories []category.Category, ref string) (view.Selector, error) {
	switch strings.ToLower(strings.TrimSpace(ref)) {
	case "", "all", "uncategorized", "none":
		return view.ParseSelector(ref)
	}
	id, err := categoryRef(categories, ref)
	if err != nil {
		return view.All, err
	}
	return view.ByCategory(id), nil
}

// draftCategory maps --category to the composer's category field.
func draftCategory(store *session.Store, ref string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(ref)) {
	case "", "none", "uncategorized":
		return "", nil
	case "new":
		return composer.NewCategoryOption, nil
	}
	id, err := categoryRef(store.Categories(), ref)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func readImage(path string) (*composer.ImageFile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &composer.ImageFile{Name: filepath.Base(path), Data: data}, nil
}

// confirm asks a yes/no question on in; anything but y/yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/N): ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// ========================================
// RENDERING
// ========================================

// renderItems prints the store's projected view.
func renderItems(out io.Writer, store *session.Store) error {
	p := store.Project()
	return renderItemList(out, p.Items, p.Total, store.Categories())
}

// renderItemList prints visible items out of total. An empty store and a
// filter that hides everything get different messages.
func renderItemList(out io.Writer, visible []item.Item, total int, categories []category.Category) error {
	if total == 0 {
		fmt.Fprintln(out, SubtleStyle.Render("This wishlist has no items yet."))
		return nil
	}
	if len(visible) == 0 {
		fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("No items match the current filters (%d hidden).", total)))
		return nil
	}

	names := category.Names(categories)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("Title"),
		HeaderStyle.Render("Brand"),
		HeaderStyle.Render("Price"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Reactions"))
	for _, it := range visible {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Title, orDash(it.Brand), orDash(it.Price),
			categoryLabel(names, it), reactionLabel(it))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, SubtleStyle.Render(fmt.Sprintf("Showing %d of %d items", len(visible), total)))
	return nil
}

func renderCategories(out io.Writer, store *session.Store) error {
	counts := store.Counts()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("Name"),
		HeaderStyle.Render("Color"),
		HeaderStyle.Render("Items"))
	for _, c := range store.Categories() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Color, counts.ByCategory[c.ID])
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", "-", SubtleStyle.Render("Uncategorized"), "-", counts.Uncategorized)
	return w.Flush()
}

func categoryLabel(names map[uuid.UUID]string, it item.Item) string {
	if it.CategoryID == nil {
		return SubtleStyle.Render("uncategorized")
	}
	if name, ok := names[*it.CategoryID]; ok {
		return name
	}
	return SubtleStyle.Render("unknown")
}

func reactionLabel(it item.Item) string {
	return fmt.Sprintf("♥ %d  👍 %d", it.HeartCount, it.ThumbsUpCount)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
