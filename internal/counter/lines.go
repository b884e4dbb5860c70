package counter

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"

	"github.com/dshills/linecount/pkg/types"
)

const readBufferSize = 32 * 1024

// CountLines counts lines the way a readLine loop returns them: a line ends
// at "\n", "\r" or "\r\n", and a trailing segment without a terminator is
// still a line. An empty input has zero lines.
func CountLines(r io.Reader) (int, error) {
	buf := make([]byte, readBufferSize)

	var (
		lines   int
		prevCR  bool // last byte was '\r', so a following '\n' belongs to it
		pending bool // bytes seen since the last terminator
	)

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			switch b {
			case '\n':
				if !prevCR {
					lines++
				}
				prevCR = false
				pending = false
			case '\r':
				lines++
				prevCR = true
				pending = false
			default:
				prevCR = false
				pending = true
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return lines, err
		}
	}

	if pending {
		lines++
	}
	return lines, nil
}

// CountFile opens path on fsys and counts its lines.
// Failures wrap types.ErrFileUnreadable.
func CountFile(fsys billy.Filesystem, path string) (int, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrFileUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	lines, err := CountLines(f)
	if err != nil {
		return lines, fmt.Errorf("%w: %v", types.ErrFileUnreadable, err)
	}
	return lines, nil
}
