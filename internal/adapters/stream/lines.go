// Package stream reads newline separated choices from an io.Reader in batches.
package stream

import (
	"context"
	"io"
	"time"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/pool"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

const (
	// DefaultChunkSize defines the default size of each chunk for reading
	DefaultChunkSize = 64 * 1024 // 64KB

	// DefaultBatchSize defines how many lines are handed to the callback at once
	DefaultBatchSize = 512

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 16 // chunks

	CR = '\r'
	LF = '\n'
)

// Config tunes a LineReader.
type Config struct {
	ChunkSize int
	BatchSize int
	// KeepEmpty passes blank lines through instead of skipping them.
	KeepEmpty bool
}

// LineReader splits a reader into lines. LF, CRLF and a lone CR all end a line.
type LineReader struct {
	logger    ports.Logger
	chunks    *pool.BufferPool
	lines     *pool.BufferPool
	chunkSize int
	batchSize int
	keepEmpty bool
}

// NewLineReader creates a LineReader. Zero sizes fall back to the defaults.
func NewLineReader(log ports.Logger, config Config) *LineReader {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LineReader{
		logger:    log,
		chunks:    pool.NewBufferPool(config.ChunkSize),
		lines:     pool.NewBufferPool(256),
		chunkSize: config.ChunkSize,
		batchSize: config.BatchSize,
		keepEmpty: config.KeepEmpty,
	}
}

// Batches calls fn with consecutive batches of lines. offset is the index of the
// first line of the batch among all emitted lines. The batch slice is reused once fn
// returns. It returns the number of lines emitted.
func (r *LineReader) Batches(ctx context.Context, reader io.Reader, fn func(offset int, batch []string) error) (int, error) {
	startTime := time.Now()

	chunkPtr := r.chunks.Get()
	defer r.chunks.Put(chunkPtr)
	chunk := (*chunkPtr)[:r.chunkSize]

	linePtr := r.lines.Get()
	defer r.lines.Put(linePtr)

	batch := make([]string, 0, r.batchSize)
	emitted := 0
	var bytesRead int64

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := fn(emitted-len(batch), batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}
	push := func(line []byte) error {
		if len(line) == 0 && !r.keepEmpty {
			return nil
		}
		batch = append(batch, string(line))
		emitted++
		if len(batch) >= r.batchSize {
			return flush()
		}
		return nil
	}

	pendingCR := false
	for reads := 0; ; reads++ {
		if reads%ContextCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				r.logger.Warn("Line reading cancelled by context", "error", err)
				return emitted, err
			}
		}

		n, err := reader.Read(chunk)
		if n > 0 {
			bytesRead += int64(n)
			data := chunk[:n]
			start := 0
			for i := 0; i < n; i++ {
				b := data[i]
				if b != LF && b != CR {
					continue
				}
				if b == LF && i == 0 && pendingCR {
					// second half of a CRLF split across reads
					start = 1
					continue
				}
				*linePtr = append(*linePtr, data[start:i]...)
				if perr := push(*linePtr); perr != nil {
					return emitted, perr
				}
				*linePtr = (*linePtr)[:0]
				if b == CR && i+1 < n && data[i+1] == LF {
					i++
				}
				start = i + 1
			}
			pendingCR = data[n-1] == CR
			if start < n {
				*linePtr = append(*linePtr, data[start:]...)
			}
		}

		if err != nil {
			if err != io.EOF {
				r.logger.Warn("Error reading from input", "error", err)
				return emitted, err
			}
			break
		}
	}

	if len(*linePtr) > 0 {
		if err := push(*linePtr); err != nil {
			return emitted, err
		}
	}
	if err := flush(); err != nil {
		return emitted, err
	}

	r.logger.Debug("Line reading completed",
		"lines", emitted,
		"bytes_read", bytesRead,
		"duration", time.Since(startTime),
	)
	return emitted, nil
}

// ReadAll collects every line of reader.
func (r *LineReader) ReadAll(ctx context.Context, reader io.Reader) ([]string, error) {
	var out []string
	_, err := r.Batches(ctx, reader, func(_ int, batch []string) error {
		out = append(out, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
