package pak

import (
	"bytes"
	"testing"
	"time"
)

func TestAddAndWrite(t *testing.T) {
	builder := NewBuilder(Header{
		Author:  "devblok",
		Created: time.Now().Unix(),
		Version: 1,
	})

	builder.Add("test", bytes.NewReader([]byte("idunvovkjnreovmegihjbrqlkmfrjnb")))
	builder.Add("test2", bytes.NewReader([]byte("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb")))

	if len(builder.entries) != 2 {
		t.Error("incorrect number of entries present")
	}

	var buf bytes.Buffer
	if _, err := builder.WriteTo(&buf); err != nil {
		t.Error(err)
	}
	if len(builder.entries) != 0 {
		t.Error("entries not drained after write")
	}
}

func TestHeaderIndexOffsets(t *testing.T) {
	builder := NewBuilder(Header{Version: 1})
	builder.Add("a", bytes.NewReader(bytes.Repeat([]byte{0xAB}, 512)))
	builder.Add("b", bytes.NewReader(bytes.Repeat([]byte{0xCD}, 512)))

	var buf bytes.Buffer
	if _, err := builder.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	archive, err := Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	header := archive.Header()
	if len(header.Index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(header.Index))
	}
	if header.Index[0].Offset != 0 {
		t.Errorf("first entry offset = %d, want 0", header.Index[0].Offset)
	}
	if want := header.Index[0].CompressedSize; header.Index[1].Offset != want {
		t.Errorf("second entry offset = %d, want %d", header.Index[1].Offset, want)
	}
}
