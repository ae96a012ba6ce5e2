package view

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
)

func ptr(s string) *string { return &s }

var (
	t1 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 = t1.Add(time.Hour)
	t3 = t2.Add(time.Hour)
)

// lamp/desk store used by the end-to-end scenarios.
func fixture() ([]item.Item, []category.Category, uuid.UUID) {
	furniture := uuid.New()
	items := []item.Item{
		{ID: uuid.New(), Title: "Lamp", Price: ptr("$45"), CreatedAt: t1},
		{ID: uuid.New(), Title: "Desk", Price: ptr("$199.99"), CreatedAt: t2, CategoryID: &furniture},
	}
	cats := []category.Category{{ID: furniture, Name: "furniture"}}
	return items, cats, furniture
}

func titles(items []item.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestParseSelector(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		in   string
		want Selector
	}{
		{"", All},
		{"all", All},
		{"ALL", All},
		{"uncategorized", Uncategorized},
		{"none", Uncategorized},
		{"other", Uncategorized},
		{id.String(), ByCategory(id)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSelector(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSelector("furniture")
	assert.ErrorIs(t, err, ErrInvalidSelector)
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"":             SortNewest,
		"newest":       SortNewest,
		"oldest":       SortOldest,
		"alphabetical": SortAlphaAsc,
		"alpha-asc":    SortAlphaAsc,
		"alpha-desc":   SortAlphaDesc,
		"price-high":   SortPriceDesc,
		"price-desc":   SortPriceDesc,
		"price-low":    SortPriceAsc,
		"Price-Asc":    SortPriceAsc,
	}
	for in, want := range tests {
		got, err := ParseSortKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortKey("random")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestFilterSearch(t *testing.T) {
	cat := uuid.New()
	names := map[uuid.UUID]string{cat: "Mutfak Eşyaları"}
	it := item.Item{
		Title:       "Coffee Grinder",
		Description: ptr("Burr, manual"),
		Brand:       ptr("Hario"),
		CategoryID:  &cat,
	}

	tests := []struct {
		search string
		want   bool
	}{
		{"", true},
		{" ", false},
		{"   ", false},
		{"coffee ", false},
		{"coffee grinder", true},
		{"coffee", true},
		{"GRINDER", true},
		{"burr", true},
		{"hario", true},
		{"mutfak", true},
		{"EŞYA", true},
		{"kettle", false},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(&it, tt.search, All, names))
		})
	}

	t.Run("UnknownCategoryNameDoesNotMatch", func(t *testing.T) {
		assert.False(t, Matches(&it, "mutfak", All, nil))
	})
}

func TestFilterSelector(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	inA := item.Item{Title: "x", CategoryID: &a}
	none := item.Item{Title: "y"}

	assert.True(t, Matches(&inA, "", All, nil))
	assert.True(t, Matches(&none, "", All, nil))

	assert.True(t, Matches(&inA, "", ByCategory(a), nil))
	assert.False(t, Matches(&inA, "", ByCategory(b), nil))
	assert.False(t, Matches(&none, "", ByCategory(a), nil))

	assert.True(t, Matches(&none, "", Uncategorized, nil))
	assert.False(t, Matches(&inA, "", Uncategorized, nil))

	// search and selector are ANDed
	assert.False(t, Matches(&inA, "y", ByCategory(a), nil))
}

func TestScenarios(t *testing.T) {
	items, cats, furniture := fixture()

	t.Run("PriceHigh", func(t *testing.T) {
		p := Project(items, cats, Query{Sort: SortPriceDesc})
		assert.Equal(t, []string{"Desk", "Lamp"}, titles(p.Items))
	})

	t.Run("SearchLamp", func(t *testing.T) {
		p := Project(items, cats, Query{Search: "lamp", Category: All})
		assert.Equal(t, []string{"Lamp"}, titles(p.Items))
	})

	t.Run("Uncategorized", func(t *testing.T) {
		p := Project(items, cats, Query{Category: Uncategorized})
		assert.Equal(t, []string{"Lamp"}, titles(p.Items))
	})

	t.Run("AfterCategoryDelete", func(t *testing.T) {
		after := make([]item.Item, len(items))
		copy(after, items)
		for i := range after {
			if after[i].InCategory(furniture) {
				after[i].CategoryID = nil
			}
		}

		p := Project(after, nil, Query{Category: Uncategorized, Sort: SortOldest})
		assert.Equal(t, []string{"Lamp", "Desk"}, titles(p.Items))
	})

	t.Run("UnparseablePriceIsZero", func(t *testing.T) {
		store := []item.Item{
			{Title: "Ask", Price: ptr("Ask for price"), CreatedAt: t1},
			{Title: "Cheap", Price: ptr("$5"), CreatedAt: t2},
			{Title: "Nil", CreatedAt: t3},
		}

		desc := Project(store, nil, Query{Sort: SortPriceDesc})
		assert.Equal(t, []string{"Cheap", "Ask", "Nil"}, titles(desc.Items))

		asc := Project(store, nil, Query{Sort: SortPriceAsc})
		assert.Equal(t, []string{"Ask", "Nil", "Cheap"}, titles(asc.Items))
	})

	t.Run("PriceWithTrailingText", func(t *testing.T) {
		store := []item.Item{
			{Title: "Cheap", Price: ptr("$5"), CreatedAt: t1},
			{Title: "Sale", Price: ptr("$19.99 (was $24.99)"), CreatedAt: t2},
			{Title: "Dotted", Price: ptr("12.50 USD."), CreatedAt: t3},
		}

		desc := Project(store, nil, Query{Sort: SortPriceDesc})
		assert.Equal(t, []string{"Sale", "Dotted", "Cheap"}, titles(desc.Items))

		asc := Project(store, nil, Query{Sort: SortPriceAsc})
		assert.Equal(t, []string{"Cheap", "Dotted", "Sale"}, titles(asc.Items))
	})
}

func TestSortKeys(t *testing.T) {
	store := []item.Item{
		{Title: "banana", CreatedAt: t2},
		{Title: "Apple", CreatedAt: t3},
		{Title: "cherry", CreatedAt: t1},
	}

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortNewest, []string{"Apple", "banana", "cherry"}},
		{SortOldest, []string{"cherry", "banana", "Apple"}},
		{SortAlphaAsc, []string{"Apple", "banana", "cherry"}},
		{SortAlphaDesc, []string{"cherry", "banana", "Apple"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			p := Project(store, nil, Query{Sort: tt.key, Language: "en"})
			assert.Equal(t, tt.want, titles(p.Items))
		})
	}

	t.Run("TurkishCollation", func(t *testing.T) {
		tr := []item.Item{{Title: "Zeytin"}, {Title: "Çanta"}, {Title: "Defter"}}
		p := Project(tr, nil, Query{Sort: SortAlphaAsc, Language: "tr"})
		assert.Equal(t, []string{"Çanta", "Defter", "Zeytin"}, titles(p.Items))
	})
}

func TestSortIsStable(t *testing.T) {
	// a1/a2/a3 share a price; b is unique. Two input orders that keep the
	// a-items in the same relative order must produce the same a-order.
	mk := func(title, price string) item.Item {
		return item.Item{ID: uuid.New(), Title: title, Price: ptr(price), CreatedAt: t1}
	}
	a1, a2, a3, b := mk("a1", "10"), mk("a2", "10"), mk("a3", "10"), mk("b", "99")

	orders := [][]item.Item{
		{a1, b, a2, a3},
		{b, a1, a2, a3},
		{a1, a2, b, a3},
	}
	for _, key := range []SortKey{SortPriceDesc, SortPriceAsc, SortNewest, SortOldest} {
		for _, in := range orders {
			got := titles(Project(in, nil, Query{Sort: key}).Items)
			var as []string
			for _, s := range got {
				if s != "b" {
					as = append(as, s)
				}
			}
			assert.Equal(t, []string{"a1", "a2", "a3"}, as, "key %s input %v", key, titles(in))
		}
	}

	t.Run("AlphaWithCaseOnlyDifference", func(t *testing.T) {
		in := []item.Item{{Title: "lamp", Brand: ptr("1")}, {Title: "Lamp", Brand: ptr("2")}}
		got := Project(in, nil, Query{Sort: SortAlphaAsc, Language: "en"}).Items
		assert.Equal(t, "1", *got[0].Brand)
		assert.Equal(t, "2", *got[1].Brand)
	})
}

func TestProjectIsIdempotentAndPure(t *testing.T) {
	items, cats, _ := fixture()
	before := make([]item.Item, len(items))
	copy(before, items)

	q := Query{Search: "", Category: All, Sort: SortPriceAsc}
	first := Project(items, cats, q)
	second := Project(items, cats, q)

	assert.Equal(t, first, second)
	assert.Equal(t, before, items, "input slice must not be reordered")
}

func TestEmptyVersusNoMatches(t *testing.T) {
	empty := Project(nil, nil, Query{})
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.NoMatches())

	items, cats, _ := fixture()
	none := Project(items, cats, Query{Search: "sofa"})
	assert.False(t, none.IsEmpty())
	assert.True(t, none.NoMatches())
	assert.Equal(t, 2, none.Total)
}

func TestCountByCategory(t *testing.T) {
	items, _, furniture := fixture()
	counts := CountByCategory(items)
	assert.Equal(t, 1, counts.Uncategorized)
	assert.Equal(t, 1, counts.ByCategory[furniture])
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("lamp", "none", "price-high", "tr")
	require.NoError(t, err)
	assert.Equal(t, Uncategorized, q.Category)
	assert.Equal(t, SortPriceDesc, q.Sort)

	_, err = ParseQuery("", "all", "bogus", "tr")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}
