package fileutil

import (
	"fmt"
	"io"
	"os"
)

// CopyFile streams src to dst with default permissions (0o644) and carries
// the source modification time over to dst.
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst and
// preserving the source modification time.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyFileIfMissing copies src to dst unless dst already exists. An existing
// destination is proof the copy already completed; the bool reports whether a
// copy actually happened.
func CopyFileIfMissing(src, dst string) (bool, error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat destination: %w", err)
	}
	if err := CopyFile(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
