package dataframe

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// WriteXLSX 导出为Excel文件
// sheet 为空时使用默认工作表名。
func (df *DataFrame) WriteXLSX(path, sheet string) error {
	if sheet == "" {
		sheet = defaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("rename sheet failed: %w", err)
		}
	}

	header := make([]interface{}, len(df.Columns))
	for i, col := range df.Columns {
		header[i] = col
	}
	if err := df.writeSheetRow(f, sheet, 1, header); err != nil {
		return err
	}

	values := make([]interface{}, len(df.Columns))
	for ri, row := range df.Rows {
		for ci, cell := range row {
			if cell.Valid {
				values[ci] = cell.Value
			} else {
				values[ci] = nil
			}
		}
		if err := df.writeSheetRow(f, sheet, ri+2, values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save excel file %q failed: %w", path, err)
	}
	return nil
}

func (df *DataFrame) writeSheetRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("build cell name failed: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write excel row %d failed: %w", row, err)
	}
	return nil
}
