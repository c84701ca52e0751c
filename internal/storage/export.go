package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// RunRow is the parquet layout of a run.
type RunRow struct {
	RunID      string `parquet:"run_id"`
	Score      int32  `parquet:"score"`
	BoardSide  int32  `parquet:"board_side"`
	Length     int32  `parquet:"length"`
	Cause      string `parquet:"cause,dict"`
	DurationMS int64  `parquet:"duration_ms"`
	CreatedAt  int64  `parquet:"created_at_unix_ms"`
}

func runRow(r Run) RunRow {
	row := RunRow{
		RunID:      r.ID,
		Score:      int32(r.Score),
		BoardSide:  int32(r.Side),
		Length:     int32(r.Length),
		Cause:      r.Cause,
		DurationMS: r.Duration.Milliseconds(),
	}
	if !r.CreatedAt.IsZero() {
		row.CreatedAt = r.CreatedAt.UnixMilli()
	}
	return row
}

// ExportParquet writes every run to a zstd-compressed parquet file at
// outPath and returns how many rows were written. The file is written next
// to outPath first and renamed into place.
func (s *Store) ExportParquet(outPath string) (int, error) {
	runs, err := s.AllRuns()
	if err != nil {
		return 0, err
	}

	rows := make([]RunRow, len(runs))
	for i, r := range runs {
		rows[i] = runRow(r)
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("storage: create output dir: %w", err)
		}
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "snake_runs_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("storage: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("storage: rename parquet: %w", err)
	}
	return len(rows), nil
}
