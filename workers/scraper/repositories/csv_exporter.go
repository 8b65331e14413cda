package repositories

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"social-scraper/workers/scraper/domain"
)

// utf8BOM makes spreadsheet applications detect UTF-8.
const utf8BOM = "\xEF\xBB\xBF"

type CSVExporter struct {
	dir string
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir}
}

// Export writes table to <dir>/<filename>. An empty table writes nothing and
// returns an empty path.
func (e *CSVExporter) Export(table domain.ResultTable, filename string) (string, error) {
	if table.Len() == 0 {
		return "", nil
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir %s: %w", e.dir, err)
	}

	path := filepath.Join(e.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if _, err := buf.WriteString(utf8BOM); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	w := csv.NewWriter(buf)
	if err := w.Write(table.Columns); err != nil {
		return "", fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, rec := range table.Records {
		if err := w.Write(rec.Row(table.Columns)); err != nil {
			return "", fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return path, f.Close()
}
