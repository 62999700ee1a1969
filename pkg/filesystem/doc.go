// Package filesystem provides the types.FS implementations cssuseref reads
// CSS files and assets from and writes relocated output to: the OS
// filesystem and any afero filesystem (in-memory ones in tests).
package filesystem
