package transfer

import (
	"fmt"
	"io"
	"time"

	"github.com/pageza/pantrychef/backend/internal/render"
	"github.com/xuri/excelize/v2"
)

const (
	ingredientsSheet = "Ingredients"
	recipesSheet     = "Saved Recipes"
)

// WriteXLSX writes the document as a workbook with one sheet per collection.
// Recipe cards are written as plain text.
func WriteXLSX(w io.Writer, d *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ingredientsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ingredientsSheet, "A1", &[]any{"Ingredient"}); err != nil {
		return err
	}
	for i, ing := range d.Ingredients {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(ingredientsSheet, cell, ing); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(recipesSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(recipesSheet, "A1", &[]any{"Title", "Saved At", "Recipe"}); err != nil {
		return err
	}
	for i, r := range d.SavedRecipes {
		text, err := render.PlainText(r.Content)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{r.Title, r.Timestamp.UTC().Format(time.RFC3339), text}
		if err := f.SetSheetRow(recipesSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(recipesSheet, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(recipesSheet, "C", "C", 80); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
