package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"shop-backend/internal/domains/article/model"
)

const articleSheet = "Articles"

var articleHeaders = []string{
	"ID", "Name", "Type", "Active", "Supplier", "Supplier Article Number",
	"Purchase Price", "Sales Price", "VAT %", "Short Description", "Created At",
	"Category", "Subcategory",
}

// BuildArticlesWorkbook renders articles as an .xlsx file, one row each.
func BuildArticlesWorkbook(articles []model.Article) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", articleSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range articleHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(articleSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(articleHeaders))
		_ = f.SetCellStyle(articleSheet, "A1", lastCol+"1", headerStyle)
	}

	for i, a := range articles {
		row := []interface{}{
			a.ID,
			a.Name,
			string(a.ArticleType),
			a.Active,
			deref(a.SupplierName),
			deref(a.SupplierArticleNumber),
			a.PurchasePrice.InexactFloat64(),
			a.SalesPrice.InexactFloat64(),
			derefInt(a.VatPercent),
			deref(a.DescriptionShort),
			a.CreatedAt.Format("2006-01-02 15:04"),
			deref(a.CategoryName),
			deref(a.SubcategoryName),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(articleSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write article %d: %w", a.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
