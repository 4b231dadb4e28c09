// Package shader holds the WGSL program drawn by the frame loop and checks
// it before a pipeline is built from it.
//
// An [Artifact] is opaque to the rest of frameloop apart from its two entry
// point names. [Artifact.Validate] compiles the source with naga so syntax
// and type errors surface at startup, not at pipeline creation.
package shader

import (
	"crypto/sha256"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/frameloop/internal/cache"
)

//go:embed shaders/triangle.wgsl
var triangleWGSL string

// Default entry point names.
const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// Validation errors.
var (
	// ErrEmptySource is returned for an artifact with no WGSL.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrInvalidSource is returned when naga rejects the WGSL.
	ErrInvalidSource = errors.New("shader: invalid source")

	// ErrEntryPointNotFound is returned when a named entry point is missing
	// or declared for the wrong stage.
	ErrEntryPointNotFound = errors.New("shader: entry point not found")
)

// Artifact is a WGSL program with a vertex and a fragment entry point.
type Artifact struct {
	Label         string
	Source        string
	VertexEntry   string
	FragmentEntry string
}

// Default returns the embedded triangle program.
func Default() Artifact {
	return Artifact{
		Label:         "triangle",
		Source:        triangleWGSL,
		VertexEntry:   DefaultVertexEntry,
		FragmentEntry: DefaultFragmentEntry,
	}
}

// Load reads a WGSL file. The label is the file's base name without
// extension; entry points default to vs_main and fs_main.
func Load(path string) (Artifact, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("shader: load %s: %w", path, err)
	}
	base := filepath.Base(path)
	return Artifact{
		Label:         strings.TrimSuffix(base, filepath.Ext(base)),
		Source:        string(src),
		VertexEntry:   DefaultVertexEntry,
		FragmentEntry: DefaultFragmentEntry,
	}, nil
}

// Validate compiles the source and checks both entry points.
func (a Artifact) Validate() error {
	if strings.TrimSpace(a.Source) == "" {
		return fmt.Errorf("%w: %q", ErrEmptySource, a.Label)
	}
	if err := a.checkEntryPoint("vertex", a.VertexEntry); err != nil {
		return err
	}
	if err := a.checkEntryPoint("fragment", a.FragmentEntry); err != nil {
		return err
	}
	if _, err := compile(a.Source); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidSource, a.Label, err)
	}
	return nil
}

// SPIRV compiles the source to little-endian SPIR-V words.
func (a Artifact) SPIRV() ([]uint32, error) {
	spirvBytes, err := compile(a.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSource, a.Label, err)
	}
	return words(spirvBytes), nil
}

type compiled struct {
	spirv []byte
	err   error
}

// compilations memoizes naga output by source hash, so rebuilding a
// pipeline after a surface format change does not recompile the shader.
var compilations = cache.New[[sha256.Size]byte, compiled](32)

func compile(src string) ([]byte, error) {
	c := compilations.GetOrCreate(sha256.Sum256([]byte(src)), func() compiled {
		spirv, err := naga.Compile(src)
		return compiled{spirv: spirv, err: err}
	})
	return c.spirv, c.err
}

// CompileStats returns the counters of the compilation cache.
func CompileStats() cache.Stats {
	return compilations.Stats()
}

// words converts SPIR-V bytes to 32-bit words. A trailing partial word is
// dropped.
func words(spirvBytes []byte) []uint32 {
	w := make([]uint32, len(spirvBytes)/4)
	for i := range w {
		w[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return w
}

// checkEntryPoint looks for "@stage fn name(" ignoring comments.
func (a Artifact) checkEntryPoint(stage, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %q: no %s entry point named", ErrEntryPointNotFound, a.Label, stage)
	}
	re := regexp.MustCompile(`@` + stage + `\s+fn\s+` + regexp.QuoteMeta(name) + `\s*\(`)
	if !re.MatchString(stripComments(a.Source)) {
		return fmt.Errorf("%w: %q: @%s fn %s", ErrEntryPointNotFound, a.Label, stage, name)
	}
	return nil
}

var lineComment = regexp.MustCompile(`//[^\n]*`)

func stripComments(src string) string {
	return lineComment.ReplaceAllString(src, "")
}
