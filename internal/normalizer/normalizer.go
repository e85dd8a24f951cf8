// Package normalizer converts chunk files into comma-delimited CSV files.
//
// Two independent transforms are applied per chunk:
//
//   - character re-encoding from the configured source encoding into UTF-8
//     (via internal/encoding), and
//   - delimiter substitution, replacing every occurrence of the configured
//     delimiter with a comma.
//
// Known limitation: delimiter substitution is a blind global character
// replace, not field-aware. If the delimiter character legitimately appears
// inside a quoted field's content, it is rewritten all the same.
package normalizer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"csv2sql/internal/encoding"
)

const (
	initialBufSize = 64 << 10 // 64 KiB
	maxLineSize    = 4 << 20  // 4 MiB
)

// Normalizer rewrites chunk files into CSV form.
type Normalizer struct {
	// Delimiter is the source field delimiter to be replaced with a comma.
	Delimiter string

	// Encoding names the source character encoding.
	Encoding string
}

// NormalizeFile reads the chunk at srcPath, re-encodes it to UTF-8, replaces
// every delimiter occurrence with a comma, and writes the result to dstPath.
// It returns the number of lines written, which always equals the chunk's
// line count (header included).
func (n Normalizer) NormalizeFile(ctx context.Context, srcPath, dstPath string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("normalize: open %s: %w", srcPath, err)
	}
	defer in.Close()

	decoded, err := encoding.NewReader(in, n.Encoding)
	if err != nil {
		return 0, fmt.Errorf("normalize: %w", err)
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("normalize: create %s: %w", dstPath, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, initialBufSize), maxLineSize)

	lines := 0
	for sc.Scan() {
		line := strings.ReplaceAll(sc.Text(), n.Delimiter, ",")
		if _, err := io.WriteString(w, line); err != nil {
			return lines, fmt.Errorf("normalize: write %s: %w", dstPath, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return lines, fmt.Errorf("normalize: write %s: %w", dstPath, err)
		}
		lines++
	}
	if err := sc.Err(); err != nil {
		return lines, fmt.Errorf("normalize: read %s: %w", srcPath, err)
	}

	if err := w.Flush(); err != nil {
		return lines, fmt.Errorf("normalize: flush %s: %w", dstPath, err)
	}
	if err := out.Close(); err != nil {
		return lines, fmt.Errorf("normalize: close %s: %w", dstPath, err)
	}
	return lines, nil
}
