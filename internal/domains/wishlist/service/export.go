package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/item/view"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/internal/shared/utils"
)

const exportSheet = "Items"

// Export xuất danh sách item đang hiển thị (cùng search/category/sort) ra xlsx.
func (s *wishlistService) Export(ctx context.Context, userID, id uuid.UUID, q item.ListQuery) (*wishlist.Export, error) {
	w, err := wishlist.Owned(ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}
	query, err := view.ParseQuery(q.Search, q.Category, q.Sort, w.Language)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	categories, err := s.categories.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	p := view.Project(items, categories, query)
	f, err := buildItemsExcelFile(p.Items, category.Names(categories))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wishlist.ErrExportFailed, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wishlist.ErrExportFailed, err)
	}

	return &wishlist.Export{
		Filename: fmt.Sprintf("%s.xlsx", w.Slug),
		Data:     buf.Bytes(),
	}, nil
}

func buildItemsExcelFile(items []item.Item, categoryNames map[uuid.UUID]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headers := []string{
		"Title",
		"Brand",
		"Price",
		"Category",
		"Description",
		"URL",
		"Hearts",
		"Thumbs up",
		"Added",
	}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, it := range items {
		rowNum := i + 2
		cell := func(col int) string {
			c, _ := excelize.CoordinatesToCellName(col, rowNum)
			return c
		}

		f.SetCellValue(exportSheet, cell(1), it.Title)
		f.SetCellValue(exportSheet, cell(2), deref(it.Brand))

		// Giá dạng số nếu parse được, nếu không giữ nguyên text người dùng nhập
		if price := utils.ExtractPrice(it.Price); !price.IsZero() {
			f.SetCellValue(exportSheet, cell(3), price.InexactFloat64())
		} else {
			f.SetCellValue(exportSheet, cell(3), deref(it.Price))
		}

		categoryName := ""
		if it.CategoryID != nil {
			categoryName = categoryNames[*it.CategoryID]
		}
		f.SetCellValue(exportSheet, cell(4), categoryName)
		f.SetCellValue(exportSheet, cell(5), deref(it.Description))
		f.SetCellValue(exportSheet, cell(6), deref(it.URL))
		f.SetCellValue(exportSheet, cell(7), it.HeartCount)
		f.SetCellValue(exportSheet, cell(8), it.ThumbsUpCount)
		f.SetCellValue(exportSheet, cell(9), it.CreatedAt.Format("2006-01-02"))
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
