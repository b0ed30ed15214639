package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/xuri/excelize/v2"

	"github.com/sambeau/unitconv/pkg/errors"
)

// Format selects an export encoding.
type Format int

const (
	FormatCSV  Format = iota // plain CSV
	FormatGzip               // gzip-compressed CSV
	FormatXLSX               // Excel workbook
)

// TimestampLayout is the local-time layout of exported timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultExportFile is the export file name when none is given.
const DefaultExportFile = "conversion_history.csv"

var csvHeader = []string{"From", "To", "Value", "Result", "Timestamp"}

const xlsxSheet = "History"

// FormatForPath picks the format from the file name suffix.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return FormatGzip
	case ".xlsx":
		return FormatXLSX
	}
	return FormatCSV
}

func exportRow(e Entry) []string {
	return []string{
		e.From,
		e.To,
		formatFloat(e.Value),
		formatFloat(e.Result),
		e.Time.Local().Format(TimestampLayout),
	}
}

// WriteCSV writes entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(exportRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGzip writes gzip-compressed CSV.
func WriteGzip(w io.Writer, entries []Entry) error {
	zw := gzip.NewWriter(w)
	if err := WriteCSV(zw, entries); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// WriteXLSX writes a workbook with one sheet. Values and results are
// numeric cells.
func WriteXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.From, e.To, e.Value, e.Result, e.Time.Local().Format(TimestampLayout)}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(xlsxSheet, "E", "E", 20); err != nil {
		return err
	}
	return f.Write(w)
}

// Export writes entries to w in the given format.
func Export(w io.Writer, entries []Entry, format Format) error {
	switch format {
	case FormatGzip:
		return WriteGzip(w, entries)
	case FormatXLSX:
		return WriteXLSX(w, entries)
	}
	return WriteCSV(w, entries)
}

// ExportFile writes entries to path, choosing the format from its suffix.
func ExportFile(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.StorageUnavailable("export to", path, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.StorageUnavailable("export to", path, err)
	}
	if err := Export(file, entries, FormatForPath(path)); err != nil {
		file.Close()
		return errors.StorageUnavailable("export to", path, err)
	}
	if err := file.Close(); err != nil {
		return errors.StorageUnavailable("export to", path, err)
	}
	return nil
}
