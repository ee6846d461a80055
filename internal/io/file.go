// Package ioutils provides file system utilities for resource-pipeline.
//
// All functions that accept a context.Context check it before doing work,
// though file operations themselves are not interruptible.
package ioutils

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with the source file's permission bits if
// it doesn't exist, or truncated if it does. The source file must exist and
// be readable. Copying a file onto itself is rejected, since truncating the
// destination would destroy the source.
//
// Parameters:
//   - ctx: Context checked before the copy starts
//   - src: Source file path (must exist)
//   - dst: Destination file path (will be created/overwritten)
//
// Example:
//
//	err := CopyFile(ctx, "/path/to/source.wav", "/path/to/dest.wav")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("copy %s: source and destination are the same file", src)
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x). If the directory
// already exists, no error is returned, so concurrent callers racing on the
// same path all succeed. If the path exists and is not a directory, an error
// wrapping fs.ErrExist is returned.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory: %w", path, fs.ErrExist)
	}
	return nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// MirrorTree recreates every directory below src under dst. Files are not
// copied. dst itself is created as well.
//
// When dst lies inside src, dst and the directories leading to it are not
// mirrored, so the walk never descends into its own output.
//
// Example:
//
//	// src: levels/, levels/a/, levels/a/b/, levels/a/map.txt
//	err := MirrorTree(ctx, "levels", "out/levels")
//	// dst: out/levels/, out/levels/a/, out/levels/a/b/
func MirrorTree(ctx context.Context, src, dst string) error {
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel != "." {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if within(abs, absDst) || within(absDst, abs) {
				return filepath.SkipDir
			}
		}
		return EnsureDir(filepath.Join(dst, rel))
	})
}

// SameFile reports whether a and b both exist and refer to the same file.
func SameFile(a, b string) bool {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(aInfo, bInfo)
}

// within reports whether path equals dir or lies below it.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
