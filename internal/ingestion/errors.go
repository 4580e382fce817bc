// Package ingestion reads recruiting spreadsheets into named tables.
package ingestion

import "fmt"

// LoadError represents an error during file I/O or workbook parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError is returned for file extensions no reader handles
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported spreadsheet format %q (want .xlsx, .xlsm or .csv)", e.Ext)
}

// EmptyWorkbookError is returned when the main sheet has no header row
type EmptyWorkbookError struct {
	Sheet string
}

func (e *EmptyWorkbookError) Error() string {
	return fmt.Sprintf("sheet %q has no header row", e.Sheet)
}
