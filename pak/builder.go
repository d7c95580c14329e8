package pak

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it is computed from the added entries.
func NewBuilder(header Header) *Builder {
	header.Index = nil
	return &Builder{header: header}
}

type pendingEntry struct {
	name       string
	size       int64
	compressed []byte
}

// Builder assembles a pak bundle. Bundles are versioned and cannot be
// appended to once written. Whenever Add is called the data is
// compressed immediately, WriteTo then lays out the index and the data
// section in one pass.
type Builder struct {
	header Header

	mutex   sync.Mutex
	entries []pendingEntry
}

// Add compresses data from r and schedules it under the given name.
// Blocks until lz4 finishes compression. Safe to call concurrently
// from different goroutines.
func (b *Builder) Add(name string, r io.Reader) error {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)
	size, err := io.Copy(writer, r)
	if err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.entries = append(b.entries, pendingEntry{
		name:       name,
		size:       size,
		compressed: compressed.Bytes(),
	})
	return nil
}

// WriteTo bundles all added entries into a pak archive ready to use.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	var offset int64
	for _, entry := range b.entries {
		header.Index = append(header.Index, IndexEntry{
			Name:           entry.name,
			Offset:         offset,
			Size:           entry.size,
			CompressedSize: int64(len(entry.compressed)),
		})
		offset += int64(len(entry.compressed))
	}

	rawHeader, err := encodeHeader(header)
	if err != nil {
		return 0, err
	}

	var written int64
	for _, chunk := range [][]byte{magic[:], int64ToBinary(int64(len(rawHeader))), rawHeader} {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	for _, entry := range b.entries {
		n, err := w.Write(entry.compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	b.entries = b.entries[:0]
	return written, nil
}
