package stock

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/omplast/stores-api/internal/application/dto"
)

const exportSheet = "Stock"

// ExportBalancesXLSX renders the balance query as a spreadsheet for the
// store clerk. Same query as GetBalances, different serialization.
func (uc *QueryUseCase) ExportBalancesXLSX(ctx context.Context, q dto.BalanceQuery) ([]byte, error) {
	rows, err := uc.GetBalances(ctx, q)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{"Item Code", "Sub Category", "UOM", "Location", "Current Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	for i, row := range rows {
		values := []any{row.ItemCode, row.SubCategory, row.UOM, row.Location, row.CurrentBalance.String()}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
