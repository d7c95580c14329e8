package core_test

import (
	"encoding/binary"
	"testing"

	"github.com/gobuffalo/packr"

	"github.com/devblok/hellovk/core"
)

var (
	staticResources packr.Box
	vertexSpirv     []byte
	fragmentSpirv   []byte
)

func init() {
	staticResources = packr.NewBox("../assets")
	vertexSpirv = staticResources.Bytes("triangle.vert.spv")
	fragmentSpirv = staticResources.Bytes("triangle.frag.spv")
	if len(vertexSpirv) == 0 || len(fragmentSpirv) == 0 {
		panic("shader fixtures missing")
	}
}

func TestSliceUint32(t *testing.T) {
	raw := make([]byte, 16)
	want := []uint32{0x07230203, 0x00010000, 0xdeadbeef, 0x00000042}
	for idx, word := range want {
		binary.LittleEndian.PutUint32(raw[idx*4:], word)
	}

	words := core.SliceUint32(raw)
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for idx := range want {
		if words[idx] != want[idx] {
			t.Errorf("word %d = %#x, want %#x", idx, words[idx], want[idx])
		}
	}
}

func TestSliceUint32Fixture(t *testing.T) {
	words := core.SliceUint32(vertexSpirv)
	if len(words) != len(vertexSpirv)/4 {
		t.Fatalf("got %d words from %d bytes", len(words), len(vertexSpirv))
	}
	if words[0] != 0x07230203 {
		t.Errorf("first word = %#x, want the SPIR-V magic", words[0])
	}
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 64)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Medium(b *testing.B) {
	data := make([]byte, 64*1024)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 4*1024*1024)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}
