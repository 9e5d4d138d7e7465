//go:build !windows

package dflog

import (
	"os"

	"golang.org/x/sys/unix"
)

// mappedImage is a read-only view of a file's bytes, acquired and released
// together with the Session that owns it.
type mappedImage struct {
	data []byte
}

func (m mappedImage) bytes() []byte { return m.data }

// Close unmaps the image. Safe to call on a zero-length mapping.
func (m mappedImage) Close() error {
	if len(m.data) == 0 {
		return nil
	}
	return unix.Munmap(m.data)
}

// mapFile opens path and memory-maps it read-only for the lifetime of the
// returned mappedImage.
func mapFile(path string) (mappedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return mappedImage{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return mappedImage{}, err
	}
	size := info.Size()
	if size == 0 {
		return mappedImage{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return mappedImage{}, err
	}
	return mappedImage{data: data}, nil
}
