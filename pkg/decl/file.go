package decl

import "bytes"

// File is a parsed source file: its path, optional contents, and declaration tree root.
// The root node itself carries no declaration; top-level declarations are its children.
type File struct {
	Path     string
	Contents []byte
	Root     *Node
}

// NewFile creates a file from a root node
func NewFile(path string, contents []byte, root *Node) *File {
	if root == nil {
		root = &Node{}
	}
	return &File{Path: path, Contents: contents, Root: root}
}

// Location identifies a position in a file. When the file contents are known, Line and
// Character are 1-based; otherwise they are zero and only Offset is meaningful.
type Location struct {
	File      string
	Line      int
	Character int
	Offset    int
}

// HasLine reports whether the location was resolved to a line and character
func (l Location) HasLine() bool {
	return l.Line > 0
}

// Location resolves a byte offset into a Location
func (f *File) Location(offset int) Location {
	loc := Location{File: f.Path, Offset: offset}
	if len(f.Contents) == 0 || offset < 0 || offset > len(f.Contents) {
		return loc
	}

	before := f.Contents[:offset]
	loc.Line = bytes.Count(before, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(before, '\n') + 1
	loc.Character = offset - lineStart + 1
	return loc
}
