/*
 * @module service/spreadsheet/workbook
 * @description 目录表格导入导出：按必填表头定位工作表并解析为行，按表格定义生成带样式的工作簿
 * @architecture 适配器模式 - 封装 excelize
 * @documentReference ai_docs/import_export.md
 * @stateFlow 上传 -> 逐个工作表查找表头 -> 行映射 / 条目 -> 行 -> 样式化工作簿
 * @rules 选中第一个首个非空行包含全部必填表头的工作表；空行跳过
 * @dependencies github.com/xuri/excelize/v2
 * @refs service/catalog/service.go
 */

package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"datastandard-service/service/models"

	"github.com/xuri/excelize/v2"
)

// Sheet 解析出的工作表
type Sheet struct {
	Name    string
	Headers []string
	Rows    []map[string]string
}

// HeaderNotFoundError 任何工作表都不包含必填表头
func HeaderNotFoundError(required []string) error {
	return models.NewValidationError(fmt.Sprintf("필수 헤더(%s)를 포함한 시트를 찾을 수 없습니다", strings.Join(required, ", ")))
}

// ParseWorkbook 解析上传的工作簿
func ParseWorkbook(r io.Reader, required []string) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, models.NewValidationError("엑셀 파일을 읽을 수 없습니다").WithData(err.Error())
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("读取工作表 %s 失败: %w", name, err)
		}
		if sheet, ok := parseSheet(name, rows, required); ok {
			return sheet, nil
		}
	}
	return nil, HeaderNotFoundError(required)
}

func parseSheet(name string, rows [][]string, required []string) (*Sheet, bool) {
	headerIdx := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, false
	}

	headers := make([]string, len(rows[headerIdx]))
	present := make(map[string]bool, len(headers))
	for i, cell := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(cell)
		present[headers[i]] = true
	}
	for _, h := range required {
		if !present[h] {
			return nil, false
		}
	}

	sheet := &Sheet{Name: name, Headers: headers, Rows: make([]map[string]string, 0, len(rows)-headerIdx-1)}
	for _, row := range rows[headerIdx+1:] {
		if blankRow(row) {
			continue
		}
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = strings.TrimSpace(row[i])
			} else {
				record[header] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, record)
	}
	return sheet, true
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// BuildWorkbook 生成工作簿：加粗表头、冻结首行、设置列宽
func BuildWorkbook(spec SheetSpec, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := spec.SheetName
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}
	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("删除默认工作表失败: %w", err)
		}
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}

	for i, col := range spec.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			return nil, fmt.Errorf("写入表头 %s 失败: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("设置表头样式失败: %w", err)
		}
		if col.Width > 0 {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(sheetName, name, name, col.Width); err != nil {
				return nil, fmt.Errorf("设置列宽失败: %w", err)
			}
		}
	}

	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("写入单元格 %s 失败: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("冻结表头失败: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("写出工作簿失败: %w", err)
	}
	return buf.Bytes(), nil
}

// EntryRows 按表格定义把条目转换为行
func EntryRows[T models.Fielder](spec SheetSpec, entries []T) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		row := make([]string, len(spec.Columns))
		for i, col := range spec.Columns {
			row[i], _ = entry.FieldValue(col.Field)
		}
		rows = append(rows, row)
	}
	return rows
}
