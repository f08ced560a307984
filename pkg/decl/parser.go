package decl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultStructureSuffix is appended to a source path to find its structure document
const DefaultStructureSuffix = ".structure.json"

// Parser produces a declaration tree for a source file
type Parser interface {
	Parse(ctx context.Context, path string) (*File, error)
}

// StructureFileParser reads pre-generated structure documents from disk
type StructureFileParser struct {
	// Suffix is appended to the source path to locate the structure document.
	Suffix string
}

// NewStructureFileParser creates a parser using the given suffix, or the default one
func NewStructureFileParser(suffix string) *StructureFileParser {
	if suffix == "" {
		suffix = DefaultStructureSuffix
	}
	return &StructureFileParser{Suffix: suffix}
}

// StructurePath returns where the structure document for path is expected
func (p *StructureFileParser) StructurePath(path string) string {
	if strings.HasSuffix(path, ".json") {
		return path
	}
	suffix := p.Suffix
	if suffix == "" {
		suffix = DefaultStructureSuffix
	}
	return path + suffix
}

// SourcePath returns the source path a structure document describes
func (p *StructureFileParser) SourcePath(path string) string {
	suffix := p.Suffix
	if suffix == "" {
		suffix = DefaultStructureSuffix
	}
	return strings.TrimSuffix(path, suffix)
}

// Parse reads the structure document for path. Source contents are attached when the
// source file is readable.
func (p *StructureFileParser) Parse(ctx context.Context, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	structurePath := p.StructurePath(path)
	data, err := os.ReadFile(structurePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure %s: %w", structurePath, err)
	}

	root, err := ParseStructure(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", structurePath, err)
	}

	sourcePath := p.SourcePath(path)
	var contents []byte
	if sourcePath != structurePath {
		contents, _ = os.ReadFile(sourcePath)
	}

	return NewFile(sourcePath, contents, root), nil
}

// DefaultCommand is the external structure tool invoked by CommandParser
var DefaultCommand = []string{"sourcekitten", "structure", "--file"}

// CommandParser runs an external tool that prints a structure document for a source file
type CommandParser struct {
	Name string
	Args []string
}

// NewCommandParser creates a parser from a command line; the source path is appended as
// the final argument. An empty command uses DefaultCommand.
func NewCommandParser(command []string) *CommandParser {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &CommandParser{Name: command[0], Args: append([]string(nil), command[1:]...)}
}

// Parse runs the tool for path and decodes its output
func (p *CommandParser) Parse(ctx context.Context, path string) (*File, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	args := append(append([]string(nil), p.Args...), path)
	cmd := exec.CommandContext(ctx, p.Name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed for %s: %w: %s", p.Name, path, err, strings.TrimSpace(stderr.String()))
	}

	root, err := ParseStructure(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s output for %s: %w", p.Name, path, err)
	}

	return NewFile(path, contents, root), nil
}
