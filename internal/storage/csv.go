package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/model"
)

var csvHeader = []string{
	"utcTimestamp",
	"blockNumber",
	"totalInvariant",
	"totalSupply",
	"lastPrice",
	"totalLPReturnPercent",
	"spotReturnPercent",
}

// CSVSink appends return rows to a CSV file. The header is written exactly
// once, only when the file does not yet exist. The file handle is opened and
// released per row so a crash never leaves a partial buffer behind.
type CSVSink struct {
	path string
	mu   sync.Mutex
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes one row, creating the file and header on first use.
func (s *CSVSink) Append(_ context.Context, row model.ReturnRow) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat output file: %w", err)
		}
		writeHeader = true
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := writer.Write(csvRecord(row)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func csvRecord(row model.ReturnRow) []string {
	return []string{
		row.UTCTimestamp,
		strconv.FormatUint(row.BlockNumber, 10),
		formatFloat(row.TotalInvariant),
		formatFloat(row.TotalSupply),
		formatFloat(row.LastPrice),
		formatFloat(row.TotalLPReturnPercent),
		formatFloat(row.SpotReturnPercent),
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
