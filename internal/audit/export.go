package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/parquet-go"
)

// ExportParquet reads every entry from the JSON-Lines audit log at
// sourcePath and writes it as a Parquet file at destPath, one row per
// entry, for downstream analysis with standard columnar tooling.
func ExportParquet(sourcePath, destPath string) (int, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("audit: open source log: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("audit: create parquet output: %w", err)
	}
	defer dest.Close()

	writer := parquet.NewGenericWriter[Entry](dest)

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return count, fmt.Errorf("audit: parse log line %d: %w", count+1, err)
		}
		if _, err := writer.Write([]Entry{entry}); err != nil {
			return count, fmt.Errorf("audit: write parquet row: %w", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return count, fmt.Errorf("audit: scan source log: %w", err)
	}

	if err := writer.Close(); err != nil {
		return count, fmt.Errorf("audit: close parquet writer: %w", err)
	}
	return count, nil
}
