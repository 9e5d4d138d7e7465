//go:build windows

package dflog

import "os"

// mappedImage is a read-only view of a file's bytes, acquired and released
// together with the Session that owns it. Windows has no portable mmap
// syscall in the standard library's reach here, so this reads the whole
// file into memory instead; decoding semantics are identical either way
// since the decoder only ever does read-only byte access against the image.
type mappedImage struct {
	data []byte
}

func (m mappedImage) bytes() []byte { return m.data }

func (m mappedImage) Close() error { return nil }

func mapFile(path string) (mappedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mappedImage{}, err
	}
	return mappedImage{data: data}, nil
}
