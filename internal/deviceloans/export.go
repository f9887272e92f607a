package deviceloans

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Loans"

// ExportXLSX renders every loan into a single-sheet workbook, ordered by due
// date ascending.
func (s *Service) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	loans, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	loans = SortByDueDate(loans, true)

	book := excelize.NewFile()
	book.SetSheetName(book.GetSheetName(0), exportSheet)

	headers := []string{"ID", "Device", "Borrower", "Amount", "Start", "Due", "Days", "Status", "Created"}
	for i, hd := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := book.SetCellValue(exportSheet, cell, hd); err != nil {
			return nil, err
		}
	}

	for row, l := range loans {
		values := []any{
			l.ID,
			l.DeviceID,
			l.BorrowerID,
			l.LoanAmount,
			l.StartDate.UTC().Format(time.RFC3339),
			l.DueDate.UTC().Format(time.RFC3339),
			DurationDays(l),
			string(l.Status),
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := book.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("export row %d: %w", row+2, err)
			}
		}
	}

	return book, nil
}
