//go:build unix

package textdiff

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Files above this size are memory-mapped for rendering instead of being
// read into the heap. Mapping failures fall back to plain reads; output
// is byte-identical either way.
const mmapThreshold = 256 << 10

func mapOrReadFile(path string) ([]byte, func() error, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	st, err := fd.Stat()
	if err != nil {
		_ = fd.Close()
		return nil, nil, err
	}
	size := st.Size()
	if size > mmapThreshold {
		data, err := unix.Mmap(int(fd.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			_ = fd.Close()
			return data, func() error { return unix.Munmap(data) }, nil
		}
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(fd, buf); err != nil {
		_ = fd.Close()
		return nil, nil, err
	}
	_ = fd.Close()
	return buf, func() error { return nil }, nil
}
