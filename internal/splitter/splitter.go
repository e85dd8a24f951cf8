// Package splitter partitions a delimited source file into fixed-size,
// numbered chunk files.
//
// The first line of the source is treated as the header and is replicated at
// the top of every chunk, so each chunk is independently consumable by the
// downstream normalizer and SQL emitter (which skip one header line per
// file). Data lines are distributed in original order, at most LinesPerChunk
// per chunk, with no loss or duplication.
package splitter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
)

const (
	// Scanner buffer sizing for very long lines.
	initialBufSize = 64 << 10 // 64 KiB
	maxLineSize    = 4 << 20  // 4 MiB
)

// Chunk describes one chunk file produced by a Split call.
type Chunk struct {
	// Path is the chunk file location.
	Path string

	// DataLines is the number of data lines in the chunk, excluding the
	// replicated header.
	DataLines int

	// Sum is the xxh3 hash of the chunk's written bytes. It is reported in
	// run logs so chunk sets can be compared across runs without re-reading
	// the files.
	Sum uint64
}

// Splitter partitions files into numbered chunks under a destination
// directory.
type Splitter struct {
	// LinesPerChunk is the maximum number of data lines per chunk. Must be
	// positive.
	LinesPerChunk int
}

// Split reads srcPath and writes numbered chunk files named
// "<prefix>NN.txt" into destDir. It returns one Chunk per file, in order.
//
// The source's first line is the header; it is written at the top of every
// chunk and does not count toward LinesPerChunk. A source with a header but
// no data lines produces no chunks. Chunk count = ceil(data_lines /
// LinesPerChunk).
func (s Splitter) Split(ctx context.Context, srcPath, destDir, prefix string) ([]Chunk, error) {
	if s.LinesPerChunk <= 0 {
		return nil, fmt.Errorf("split: lines per chunk must be positive, got %d", s.LinesPerChunk)
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("split: open %s: %w", srcPath, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, initialBufSize), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("split: read header: %w", err)
		}
		// Empty source: nothing to split.
		return nil, nil
	}
	header := sc.Text()

	var (
		chunks []Chunk
		cur    *chunkWriter
	)

	closeCur := func() error {
		if cur == nil {
			return nil
		}
		c, err := cur.finish()
		cur = nil
		if err != nil {
			return err
		}
		chunks = append(chunks, c)
		return nil
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			if cur != nil {
				cur.abort()
			}
			return nil, ctx.Err()
		default:
		}

		if cur == nil {
			path := filepath.Join(destDir, fmt.Sprintf("%s%02d.txt", prefix, len(chunks)))
			cur, err = newChunkWriter(path, header)
			if err != nil {
				return nil, err
			}
		}

		if err := cur.writeLine(sc.Text()); err != nil {
			cur.abort()
			return nil, err
		}

		if cur.dataLines == s.LinesPerChunk {
			if err := closeCur(); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		if cur != nil {
			cur.abort()
		}
		return nil, fmt.Errorf("split: read %s: %w", srcPath, err)
	}

	if err := closeCur(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// chunkWriter accumulates one chunk file, hashing bytes as they are written.
type chunkWriter struct {
	path      string
	f         *os.File
	w         *bufio.Writer
	h         *xxh3.Hasher
	dataLines int
}

func newChunkWriter(path, header string) (*chunkWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("split: create %s: %w", path, err)
	}
	cw := &chunkWriter{
		path: path,
		f:    f,
		w:    bufio.NewWriter(f),
		h:    xxh3.New(),
	}
	if err := cw.write(header); err != nil {
		cw.abort()
		return nil, err
	}
	return cw, nil
}

// writeLine appends one data line to the chunk.
func (cw *chunkWriter) writeLine(line string) error {
	if err := cw.write(line); err != nil {
		return err
	}
	cw.dataLines++
	return nil
}

func (cw *chunkWriter) write(line string) error {
	if _, err := io.WriteString(cw.w, line); err != nil {
		return fmt.Errorf("split: write %s: %w", cw.path, err)
	}
	if err := cw.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("split: write %s: %w", cw.path, err)
	}
	_, _ = cw.h.WriteString(line + "\n")
	return nil
}

// finish flushes and closes the chunk file and returns its description.
func (cw *chunkWriter) finish() (Chunk, error) {
	if err := cw.w.Flush(); err != nil {
		cw.abort()
		return Chunk{}, fmt.Errorf("split: flush %s: %w", cw.path, err)
	}
	if err := cw.f.Close(); err != nil {
		return Chunk{}, fmt.Errorf("split: close %s: %w", cw.path, err)
	}
	return Chunk{
		Path:      cw.path,
		DataLines: cw.dataLines,
		Sum:       cw.h.Sum64(),
	}, nil
}

// abort closes the underlying file without flushing; used on error paths.
func (cw *chunkWriter) abort() {
	_ = cw.f.Close()
}
