package pak

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4"
)

// Open opens a pak archive from r. It checks the magic before parsing
// anything else and returns ErrFormat when the file is not an archive.
func Open(r io.ReaderAt) (*Archive, error) {
	rawMagic := make([]byte, magicLength)
	if num, err := r.ReadAt(rawMagic, 0); err != nil {
		return nil, err
	} else if num < magicLength || !bytes.Equal(rawMagic, magic[:]) {
		return nil, ErrFormat
	}

	rawSize := make([]byte, headerSizeLength)
	if num, err := r.ReadAt(rawSize, magicLength); err != nil {
		return nil, err
	} else if num < headerSizeLength {
		return nil, ErrFormat
	}

	headerSize := binaryToInt64(rawSize)
	if headerSize <= 0 {
		return nil, ErrFormat
	}

	rawHeader := make([]byte, headerSize)
	if num, err := r.ReadAt(rawHeader, magicLength+headerSizeLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFormat
	}

	var header Header
	if err := decodeHeader(&header, rawHeader); err != nil {
		return nil, ErrFormat
	}

	return &Archive{
		reader:     r,
		header:     header,
		dataOffset: magicLength + headerSizeLength + headerSize,
	}, nil
}

// Archive provides concurrent reads from a pak file, each entry gets
// its own decompressing Reader.
type Archive struct {
	reader     io.ReaderAt
	header     Header
	dataOffset int64
}

// Header returns the decoded bundle header.
func (a *Archive) Header() Header {
	return a.header
}

// Names lists the entries in the order they were added.
func (a *Archive) Names() []string {
	names := make([]string, len(a.header.Index))
	for idx, entry := range a.header.Index {
		names[idx] = entry.Name
	}
	return names
}

func (a *Archive) entry(name string) (IndexEntry, bool) {
	for _, entry := range a.header.Index {
		if entry.Name == name {
			return entry, true
		}
	}
	return IndexEntry{}, false
}

// Open returns a Reader for a single entry in the Archive.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.entry(name)
	if !ok {
		return nil, ErrNotFound
	}

	section := io.NewSectionReader(a.reader, a.dataOffset+entry.Offset, entry.CompressedSize)
	return &Reader{
		entry:        entry,
		decompressor: lz4.NewReader(section),
	}, nil
}

// ReadAll returns the entire decompressed contents of an entry.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	reader, err := a.Open(name)
	if err != nil {
		return nil, err
	}

	contents := make([]byte, reader.Size())
	if _, err := io.ReadFull(reader, contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// Reader decompresses a single entry of an Archive on the fly.
type Reader struct {
	entry        IndexEntry
	decompressor *lz4.Reader
}

// Size returns the decompressed size of the entry.
func (r *Reader) Size() int64 {
	return r.entry.Size
}

// Read reads already decompressed data
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.decompressor.Read(p)
}
