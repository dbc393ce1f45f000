package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/models"
	"datastandard-service/service/spreadsheet"
)

// ImportRowError 导入时被跳过的行
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult 表格导入结果
type ImportResult struct {
	Filename string           `json:"filename"`
	Sheet    string           `json:"sheet"`
	Replace  bool             `json:"replace"`
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Total    int              `json:"total"`
	Errors   []ImportRowError `json:"errors"`
}

// Import 从工作簿导入条目；replace 为 true 时替换文件中的全部条目，否则追加
func (s *Service[T, P]) Import(ctx context.Context, filename string, r io.Reader, replace bool) (*ImportResult, error) {
	spec, ok := spreadsheet.SpecFor(s.def.CatalogType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog_store.ErrUnknownCatalog, s.def.CatalogType)
	}
	filename = s.resolveFile(filename)
	if err := s.ensureFile(filename); err != nil {
		return nil, err
	}

	sheet, err := spreadsheet.ParseWorkbook(r, spec.Required)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Filename: filename,
		Sheet:    sheet.Name,
		Replace:  replace,
		Total:    len(sheet.Rows),
		Errors:   []ImportRowError{},
	}

	err = catalog_store.Update(ctx, s.store, s.def.CatalogType, filename, func(file *models.CatalogFile[T]) (bool, error) {
		if replace {
			file.Entries = []T{}
		}
		imported := 0
		for i, row := range sheet.Rows {
			// 表头占第一行
			rowNum := i + 2
			var entry T
			p := P(&entry)
			for header, value := range row {
				if field, ok := spec.FieldFor(header); ok {
					p.SetField(field, value)
				}
			}
			if missing := p.MissingFields(); len(missing) > 0 {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "필수 필드 누락: " + strings.Join(missing, ", ")})
				continue
			}
			if s.def.Normalize != nil {
				s.def.Normalize(&entry)
			}
			if s.def.CheckConflict != nil {
				if err := s.def.CheckConflict(ctx, filename, file.Entries, &entry); err != nil {
					if models.IsKind(err, models.ErrorKindConflict) {
						result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
						continue
					}
					return false, err
				}
			}
			p.Meta().Stamp()
			file.Entries = append(file.Entries, entry)
			imported++
		}

		if s.def.Derive != nil && imported > 0 {
			if err := s.def.Derive(ctx, file, pointers(file.Entries)); err != nil {
				return false, err
			}
		}
		result.Imported = imported
		result.Skipped = len(result.Errors)
		return result.Imported > 0 || replace, nil
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(ctx, models.HistoryLog{
		Action:      models.HistoryActionImport,
		CatalogType: s.def.CatalogType,
		Filename:    filename,
		Details: map[string]interface{}{
			"sheet":    result.Sheet,
			"replace":  replace,
			"imported": result.Imported,
			"skipped":  result.Skipped,
		},
	})
	return result, nil
}

// Export 导出为工作簿
func (s *Service[T, P]) Export(ctx context.Context, filename string) ([]byte, error) {
	spec, ok := spreadsheet.SpecFor(s.def.CatalogType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog_store.ErrUnknownCatalog, s.def.CatalogType)
	}
	file, err := s.load(ctx, s.resolveFile(filename))
	if err != nil {
		return nil, err
	}
	return spreadsheet.BuildWorkbook(spec, spreadsheet.EntryRows(spec, file.Entries))
}
