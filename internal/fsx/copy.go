package fsx

import (
	"io"
	"os"
)

// Ops are the write primitives the reorganizer goes through.
type Ops interface {
	// EnsureDir creates dir and its parents; an existing dir is not an error.
	EnsureDir(dir string) error
	// CopyFile copies src to dst, replacing dst when it exists.
	CopyFile(src, dst string) error
}

// OS implements Ops on the real filesystem.
type OS struct{}

// EnsureDir implements Ops.
func (OS) EnsureDir(dir string) error { return EnsureDir(dir) }

// CopyFile implements Ops.
func (OS) CopyFile(src, dst string) error { return CopyFile(src, dst) }

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// CopyFile copies the content of src to dst, truncating dst if it exists.
// The source's permission bits are carried over on creation.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	mode := os.FileMode(0o644)
	if info, err := in.Stat(); err == nil {
		mode = info.Mode().Perm()
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	// A failed close can mean the data never reached the disk.
	return out.Close()
}
