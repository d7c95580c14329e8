package core_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devblok/hellovk/core"
)

func TestLoadShaderBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.vert.spv")
	if err := os.WriteFile(path, vertexSpirv, 0o644); err != nil {
		t.Fatal(err)
	}

	contents, err := core.LoadShaderBinary(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(contents, vertexSpirv) {
		t.Error("loaded shader differs from the fixture")
	}
	if len(contents)%4 != 0 {
		t.Errorf("fixture size %d is not word aligned", len(contents))
	}
}

func TestLoadShaderBinaryMissingFile(t *testing.T) {
	_, err := core.LoadShaderBinary(filepath.Join(t.TempDir(), "nope.vert.spv"))
	if !errors.Is(err, core.ErrShaderFileNotFound) {
		t.Errorf("err = %v, want ErrShaderFileNotFound", err)
	}
}

// Alignment is validated before the driver ever sees the code, so
// these run without a device.
func TestNewVulkanShaderRejectsEmpty(t *testing.T) {
	_, err := core.NewVulkanShader("empty", core.VertexShaderType, nil, nil)
	if !errors.Is(err, core.ErrShaderModuleCreation) {
		t.Errorf("err = %v, want ErrShaderModuleCreation", err)
	}
}

func TestNewVulkanShaderRejectsMisaligned(t *testing.T) {
	misaligned := vertexSpirv[:len(vertexSpirv)-1]
	_, err := core.NewVulkanShader("misaligned", core.VertexShaderType, misaligned, nil)
	if !errors.Is(err, core.ErrShaderModuleCreation) {
		t.Errorf("err = %v, want ErrShaderModuleCreation", err)
	}
}
