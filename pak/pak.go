// Package pak is an lz4 backed bundle format for compiled shader
// binaries and other small renderer assets. The archive itself is not
// compressed, every entry is an individual lz4 frame whose location is
// known up front from the index, so any entry can be read and
// decompressed on its own. Space efficiency is secondary to getting
// assets from disk to a usable state fast, and reads are safe to
// perform concurrently.
package pak

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFormat   = errors.New("corrupted or not a pak archive")
	ErrNotFound = errors.New("no such entry in archive")
)

var magic = [4]byte{'P', 'A', 'K', 0}

// Sizes relevant to the fixed part of the file header
const (
	magicLength      = 4
	headerSizeLength = 8
)

// IndexEntry is info for one entry in the bundle index. Offset is
// relative to the start of the data section, which begins right after
// the encoded header.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the bundle header, gob encoded behind the magic and the
// header length.
type Header struct {
	Author  string
	Created int64
	Version int64
	Index   []IndexEntry
}

func encodeHeader(h Header) ([]byte, error) {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(h); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func decodeHeader(h *Header, raw []byte) error {
	return gob.NewDecoder(bytes.NewReader(raw)).Decode(h)
}

func int64ToBinary(num int64) []byte {
	raw := make([]byte, headerSizeLength)
	binary.LittleEndian.PutUint64(raw, uint64(num))
	return raw
}

func binaryToInt64(raw []byte) int64 {
	return int64(binary.LittleEndian.Uint64(raw))
}
