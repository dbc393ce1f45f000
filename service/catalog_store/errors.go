package catalog_store

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCatalog  = errors.New("unknown catalog type")
	ErrInvalidFilename = errors.New("invalid catalog filename")
	ErrFileNotFound    = errors.New("catalog file not found")
	ErrFileExists      = errors.New("catalog file already exists")
	ErrProtectedFile   = errors.New("catalog file is protected")
)

// FileReadError 目录文件不可读或已损坏，且无法从备份恢复
type FileReadError struct {
	Path                string
	RecoveredFromBackup bool
	Err                 error
}

func (e *FileReadError) Error() string {
	if e.RecoveredFromBackup {
		return fmt.Sprintf("catalog file %s recovered from backup but is invalid: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("catalog file %s unreadable: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}
