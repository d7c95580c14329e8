package core

import "testing"

func TestBestScoreIndexKeepsEarlierOnTie(t *testing.T) {
	tests := []struct {
		name      string
		scores    []uint32
		wantIdx   int
		wantScore uint32
	}{
		{"single", []uint32{5}, 0, 5},
		{"ascending", []uint32{1, 2, 3}, 2, 3},
		{"tie keeps first", []uint32{7, 7, 3}, 0, 7},
		{"later tie ignored", []uint32{1, 9, 9}, 1, 9},
		{"all zero", []uint32{0, 0}, 0, 0},
	}
	for _, tc := range tests {
		idx, score := bestScoreIndex(tc.scores)
		if idx != tc.wantIdx || score != tc.wantScore {
			t.Errorf("%s: bestScoreIndex(%v) = (%d, %d), want (%d, %d)",
				tc.name, tc.scores, idx, score, tc.wantIdx, tc.wantScore)
		}
	}
}

func TestShaderTypeOf(t *testing.T) {
	if got := shaderTypeOf("triangle.vert.spv"); got != VertexShaderType {
		t.Errorf("vert classified as %v", got)
	}
	if got := shaderTypeOf("triangle.frag.spv"); got != FragmentShaderType {
		t.Errorf("frag classified as %v", got)
	}
	if got := shaderTypeOf("readme.txt"); got != UnknownShaderType {
		t.Errorf("stray file classified as %v", got)
	}
}

func TestShaderBaseName(t *testing.T) {
	if got := shaderBaseName("shaders/triangle.vert.spv"); got != "triangle" {
		t.Errorf("base name = %q, want triangle", got)
	}
}

func TestContainsAll(t *testing.T) {
	haystack := []string{"VK_KHR_surface", "VK_KHR_swapchain"}

	if missing, ok := containsAll(haystack, []string{"VK_KHR_swapchain"}); !ok {
		t.Errorf("reported %q missing", missing)
	}
	if missing, ok := containsAll(haystack, []string{"VK_KHR_display"}); ok || missing != "VK_KHR_display" {
		t.Errorf("missing = %q, ok = %v", missing, ok)
	}
	if _, ok := containsAll(nil, nil); !ok {
		t.Error("empty requirements should always hold")
	}
}
