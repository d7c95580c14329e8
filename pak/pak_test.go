package pak_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/exp/mmap"

	"github.com/devblok/hellovk/pak"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildArchive(t *testing.T) []byte {
	t.Helper()

	builder := pak.NewBuilder(pak.Header{
		Author:  "devblok",
		Created: time.Now().Unix(),
		Version: 1,
	})
	if err := builder.Add("test", bytes.NewReader([]byte(testString1))); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test2", bytes.NewReader([]byte(testString2))); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	written, err := builder.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if written != int64(buf.Len()) {
		t.Fatalf("reported %d written bytes, buffer holds %d", written, buf.Len())
	}
	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	archive, err := pak.Open(bytes.NewReader(buildArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	f, err := archive.Open("test")
	if err != nil {
		t.Fatal(err)
	}
	if f.Size() != int64(len(testString1)) {
		t.Errorf("entry size = %d, want %d", f.Size(), len(testString1))
	}

	result := make([]byte, len(testString1))
	if _, err := io.ReadFull(f, result); err != nil {
		t.Fatal(err)
	}
	if string(result) != testString1 {
		t.Error("test string does not match up")
	}
}

func TestCreateAndReadAll(t *testing.T) {
	archive, err := pak.Open(bytes.NewReader(buildArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]string{
		"test":  testString1,
		"test2": testString2,
	} {
		contents, err := archive.ReadAll(name)
		if err != nil {
			t.Fatal(err)
		}
		if string(contents) != want {
			t.Errorf("%s does not match up", name)
		}
	}
}

func TestOpenMmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.pak")
	if err := os.WriteFile(path, buildArchive(t), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := mmap.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	archive, err := pak.Open(r)
	if err != nil {
		t.Fatal(err)
	}
	contents, err := archive.ReadAll("test2")
	if err != nil {
		t.Fatal(err)
	}
	if string(contents) != testString2 {
		t.Error("test string does not match up")
	}
}

func TestNamesKeepOrder(t *testing.T) {
	archive, err := pak.Open(bytes.NewReader(buildArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	names := archive.Names()
	if len(names) != 2 || names[0] != "test" || names[1] != "test2" {
		t.Errorf("Names() = %v, want insertion order", names)
	}
}

func TestOpenRejectsWrongMagic(t *testing.T) {
	corrupt := buildArchive(t)
	corrupt[0] = 'X'

	if _, err := pak.Open(bytes.NewReader(corrupt)); !errors.Is(err, pak.ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}

func TestOpenRejectsTruncatedHeader(t *testing.T) {
	truncated := buildArchive(t)[:6]

	if _, err := pak.Open(bytes.NewReader(truncated)); err == nil {
		t.Error("opening a truncated archive should fail")
	}
}

func TestMissingEntry(t *testing.T) {
	archive, err := pak.Open(bytes.NewReader(buildArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := archive.Open("nope"); !errors.Is(err, pak.ErrNotFound) {
		t.Errorf("Open err = %v, want ErrNotFound", err)
	}
	if _, err := archive.ReadAll("nope"); !errors.Is(err, pak.ErrNotFound) {
		t.Errorf("ReadAll err = %v, want ErrNotFound", err)
	}
}
