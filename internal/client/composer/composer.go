// Package composer drives the item add/edit lifecycle of the terminal client:
//
//	idle -> composing -> submitting -> idle
//	                               \-> composing (error kept, draft intact)
//	composing -> creating-category -> composing (draft restored)
package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wishlist-backend/internal/client/session"
	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
)

type State int

const (
	StateIdle State = iota
	StateComposing
	StateSubmitting
	StateCreatingCategory
)

func (s State) String() string {
	switch s {
	case StateComposing:
		return "composing"
	case StateSubmitting:
		return "submitting"
	case StateCreatingCategory:
		return "creating-category"
	default:
		return "idle"
	}
}

type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

var ErrInvalidTransition = errors.New("invalid composer transition")

// Remote is the part of the API client the composer writes through.
type Remote interface {
	UploadItemImage(ctx context.Context, wishlistID uuid.UUID, filename string, data []byte) (*item.UploadResponse, error)
	CreateItem(ctx context.Context, wishlistID uuid.UUID, req item.CreateItemRequest) (*item.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req item.UpdateItemRequest) (*item.Item, error)
	CreateCategory(ctx context.Context, wishlistID uuid.UUID, req category.CreateCategoryReq) (*category.Category, error)
}

type Composer struct {
	store  *session.Store
	remote Remote

	state    State
	mode     Mode
	draft    ItemDraft
	original *item.Item
	// category value to restore when category creation is cancelled
	resumeCategory string
	err            error
}

func New(store *session.Store, remote Remote) *Composer {
	return &Composer{store: store, remote: remote}
}

func (c *Composer) State() State     { return c.state }
func (c *Composer) Mode() Mode       { return c.mode }
func (c *Composer) Draft() ItemDraft { return c.draft }

// Err is the error of the last failed submit, cleared on the next transition.
func (c *Composer) Err() error { return c.err }

// StartAdd opens an empty form.
func (c *Composer) StartAdd() error {
	if c.state != StateIdle {
		return c.invalid("start add")
	}
	c.enterComposing(ModeAdd, ItemDraft{}, nil)
	return nil
}

// StartEdit opens the form pre-populated from it.
func (c *Composer) StartEdit(it item.Item) error {
	if c.state != StateIdle {
		return c.invalid("start edit")
	}
	orig := it
	c.enterComposing(ModeEdit, DraftFromItem(it), &orig)
	return nil
}

// Update replaces the draft. Choosing NewCategoryOption interrupts composing
// into category creation; the draft is kept for the resume.
func (c *Composer) Update(d ItemDraft) error {
	if c.state != StateComposing {
		return c.invalid("update draft")
	}
	if d.Category == NewCategoryOption {
		c.resumeCategory = c.draft.Category
		d.Category = c.resumeCategory
		c.draft = d
		c.err = nil
		c.state = StateCreatingCategory
		return nil
	}
	c.draft = d
	return nil
}

// SubmitCategory creates the category and resumes composing with it selected.
// On failure the composer stays in category creation.
func (c *Composer) SubmitCategory(ctx context.Context, d CategoryDraft) (*category.Category, error) {
	if c.state != StateCreatingCategory {
		return nil, c.invalid("submit category")
	}
	if err := d.Validate(); err != nil {
		c.err = err
		return nil, err
	}

	req := category.CreateCategoryReq{Name: strings.TrimSpace(d.Name), Color: optional(d.Color)}
	created, err := c.remote.CreateCategory(ctx, c.store.Wishlist().ID, req)
	if err != nil {
		c.err = err
		return nil, err
	}

	c.store.ApplyCategory(*created)
	c.draft.Category = created.ID.String()
	c.err = nil
	c.state = StateComposing
	return created, nil
}

// CancelCategory resumes composing with the previous category choice.
func (c *Composer) CancelCategory() error {
	if c.state != StateCreatingCategory {
		return c.invalid("cancel category")
	}
	c.draft.Category = c.resumeCategory
	c.err = nil
	c.state = StateComposing
	return nil
}

// Cancel discards the draft.
func (c *Composer) Cancel() error {
	if c.state != StateComposing {
		return c.invalid("cancel")
	}
	c.reset()
	return nil
}

// Submit validates locally, uploads the pending image, writes the item and
// merges the result into the store. Validation failures never reach the
// remote. Any failure returns to composing with the draft intact.
func (c *Composer) Submit(ctx context.Context) (*item.Item, error) {
	if c.state != StateComposing {
		return nil, c.invalid("submit")
	}
	if err := c.draft.Validate(); err != nil {
		c.err = err
		return nil, err
	}

	c.state = StateSubmitting
	saved, err := c.write(ctx)
	if err != nil {
		c.err = err
		c.state = StateComposing
		return nil, err
	}

	if c.mode == ModeAdd {
		c.store.ApplyInsert(*saved)
	} else if !c.store.ApplyUpdate(*saved) {
		c.store.ApplyInsert(*saved)
	}
	c.reset()
	return saved, nil
}

func (c *Composer) write(ctx context.Context) (*item.Item, error) {
	wishlistID := c.store.Wishlist().ID

	imageURL := strings.TrimSpace(c.draft.ImageURL)
	if img := c.draft.Image; img != nil {
		up, err := c.remote.UploadItemImage(ctx, wishlistID, img.Name, img.Data)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		// a failed write below must not re-upload on retry
		c.draft.ImageURL = up.URL
		c.draft.Image = nil
		imageURL = up.URL
	}

	if c.mode == ModeAdd {
		return c.remote.CreateItem(ctx, wishlistID, item.CreateItemRequest{
			Title:       strings.TrimSpace(c.draft.Title),
			Description: optional(c.draft.Description),
			URL:         optional(c.draft.URL),
			ImageURL:    optional(imageURL),
			Price:       optional(c.draft.Price),
			Brand:       optional(c.draft.Brand),
			CategoryID:  c.draft.categoryID(),
		})
	}
	return c.remote.UpdateItem(ctx, c.original.ID, c.patch(imageURL))
}

// patch sends every form field; empty strings clear optional values.
func (c *Composer) patch(imageURL string) item.UpdateItemRequest {
	text := func(s string) *string {
		t := strings.TrimSpace(s)
		return &t
	}

	req := item.UpdateItemRequest{
		Title:       text(c.draft.Title),
		Description: text(c.draft.Description),
		URL:         text(c.draft.URL),
		Price:       text(c.draft.Price),
		Brand:       text(c.draft.Brand),
	}

	if id := c.draft.categoryID(); id != nil {
		req.CategoryID = id
	} else if c.original.CategoryID != nil {
		req.ClearCategory = true
	}

	switch {
	case imageURL == deref(c.original.ImageURL):
	case imageURL == "":
		req.ClearImage = true
	default:
		req.ImageURL = &imageURL
	}
	return req
}

func (c *Composer) enterComposing(mode Mode, d ItemDraft, original *item.Item) {
	c.mode = mode
	c.draft = d
	c.original = original
	c.err = nil
	c.state = StateComposing
}

func (c *Composer) reset() {
	c.state = StateIdle
	c.mode = ModeAdd
	c.draft = ItemDraft{}
	c.original = nil
	c.resumeCategory = ""
	c.err = nil
}

func (c *Composer) invalid(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, c.state)
}
