package types

import (
	"fmt"
	"io"
	"path/filepath"
)

// File is a file travelling through the build pipeline. Path is always
// Base joined with Relative.
type File struct {
	// Path is the absolute filesystem path
	Path string

	// Relative is the path relative to Base
	Relative string

	// Base is the root Relative is computed against
	Base string

	// Contents holds the buffered bytes. A nil slice marks a null file,
	// which is different from an empty one.
	Contents []byte

	// Stream is set when the contents have not been materialised yet.
	Stream io.Reader
}

// NewFile creates a buffered file rooted at base using host path rules
func NewFile(base, relative string, contents []byte) *File {
	return &File{
		Path:     filepath.Join(base, relative),
		Relative: relative,
		Base:     base,
		Contents: contents,
	}
}

// IsNull reports whether the file carries no contents at all
func (f *File) IsNull() bool {
	return f.Contents == nil && f.Stream == nil
}

// IsStream reports whether the contents are a deferred stream
func (f *File) IsStream() bool {
	return f.Stream != nil
}

// IsBuffer reports whether the contents are held in memory
func (f *File) IsBuffer() bool {
	return f.Contents != nil && f.Stream == nil
}

func (f *File) String() string {
	return fmt.Sprintf("<File %q>", f.Relative)
}
