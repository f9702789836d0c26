package tablefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daabcontech/navisexport/internal/domain/viewpoint"
)

const (
	// DefaultTableName is the table file name the downstream reporting tool
	// expects when nothing else is configured.
	DefaultTableName = "navisworks_views_comments.csv"

	// TraceFileName is the companion trace log written next to the table.
	TraceFileName = "debug.txt"
)

// WriteTable serializes the header row plus one record per row. Every field
// is double-quoted with embedded quotes doubled, so free-text comment bodies
// containing commas, quotes or newlines survive a round trip. UTF-8, no BOM,
// CRLF record separators.
func WriteTable(path string, rows []viewpoint.Row) error {
	var buf bytes.Buffer
	writeRecord(&buf, viewpoint.Header())
	for _, row := range rows {
		writeRecord(&buf, row.Fields())
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}
	return nil
}

// WriteTrace writes one line per trace entry, in recorded order.
func WriteTrace(path string, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write trace %s: %w", path, err)
	}
	return nil
}

func writeRecord(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

// writeFileAtomic stages the content in a temp file next to the target and
// renames it into place, so a failed write never leaves a half-written
// artifact at the target path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
