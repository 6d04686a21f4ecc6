package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"sync/atomic"

	"github.com/ynxchain/ynx-indexer/internal/logger"
)

// maxRecordSize bounds a single line of a record log.
const maxRecordSize = 1 << 20

// recordLog is an append-only file holding one JSON record per line.
// Only the byte range below the committed offset is visible to readers.
type recordLog[T any] struct {
	name string
	path string
	log  *logger.Logger

	file    *os.File
	w       *bufio.Writer
	written int64

	committed atomic.Int64
}

// openRecordLog opens the log at path and cuts it back to committed bytes,
// dropping records of a height whose checkpoint never landed.
func openRecordLog[T any](name, path string, committed int64, log *logger.Logger) (*recordLog[T], error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open %s log: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s log: %w", name, err)
	}

	switch size := info.Size(); {
	case size < committed:
		f.Close()
		return nil, fmt.Errorf("%s log is %d bytes but the checkpoint commits %d", name, size, committed)
	case size > committed:
		log.Warnw("discarding uncommitted records", "log", name, "bytes", size-committed)
		if err := f.Truncate(committed); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to truncate %s log: %w", name, err)
		}
	}

	if _, err := f.Seek(committed, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek %s log: %w", name, err)
	}

	l := &recordLog[T]{
		name:    name,
		path:    path,
		log:     log,
		file:    f,
		w:       bufio.NewWriter(f),
		written: committed,
	}
	l.committed.Store(committed)

	return l, nil
}

// Append buffers one record. It becomes visible to readers after Publish.
func (l *recordLog[T]) Append(record T) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", l.name, err)
	}
	line = append(line, '\n')

	n, err := l.w.Write(line)
	l.written += int64(n)
	if err != nil {
		return fmt.Errorf("failed to append %s record: %w", l.name, err)
	}

	return nil
}

// Flush writes buffered records to the file, optionally fsyncing it, and
// returns the resulting length. Nothing becomes visible to readers yet.
func (l *recordLog[T]) Flush(sync bool) (int64, error) {
	if err := l.w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush %s log: %w", l.name, err)
	}

	if sync {
		if err := l.file.Sync(); err != nil {
			return 0, fmt.Errorf("failed to sync %s log: %w", l.name, err)
		}
	}

	return l.written, nil
}

// Publish exposes everything up to offset to readers.
func (l *recordLog[T]) Publish(offset int64) {
	l.committed.Store(offset)
}

// Rollback drops everything written after the committed offset.
func (l *recordLog[T]) Rollback() error {
	committed := l.committed.Load()

	l.w.Reset(l.file)
	if err := l.file.Truncate(committed); err != nil {
		return fmt.Errorf("failed to truncate %s log: %w", l.name, err)
	}
	if _, err := l.file.Seek(committed, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek %s log: %w", l.name, err)
	}
	l.written = committed

	return nil
}

// Committed returns the number of bytes visible to readers.
func (l *recordLog[T]) Committed() int64 {
	return l.committed.Load()
}

// Scan iterates the committed records in append order. Every iteration opens
// its own handle, so the sequence can be restarted and used concurrently with
// appends. Lines that do not decode are skipped.
func (l *recordLog[T]) Scan() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		limit := l.committed.Load()
		if limit == 0 {
			return
		}

		f, err := os.Open(l.path)
		if err != nil {
			yield(zero, fmt.Errorf("failed to open %s log: %w", l.name, err))
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(io.LimitReader(f, limit))
		scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize) //nolint:mnd

		for lineNo := 1; scanner.Scan(); lineNo++ {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var record T
			if err := json.Unmarshal(line, &record); err != nil {
				l.log.Debugw("skipping malformed record", "log", l.name, "line", lineNo, "error", err)
				continue
			}

			if !yield(record, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
			yield(zero, fmt.Errorf("failed to read %s log: %w", l.name, err))
		}
	}
}

// Close closes the file. Uncommitted records are dropped on the next open.
func (l *recordLog[T]) Close() error {
	return l.file.Close()
}
