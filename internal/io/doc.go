// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File copying
//   - Race-safe directory creation
//   - Mirroring a directory tree without its files
//   - Image resizing and re-encoding
//
// # File Operations
//
//	// Copy a file, overwriting the destination
//	err := ioutils.CopyFile(ctx, "/src/hit.wav", "/dst/hit.wav")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
//	// Recreate every directory below src under dst
//	err := ioutils.MirrorTree(ctx, "/src/levels", "/dst/levels")
//
// # Image Processing
//
// The ImageService handles PNG and JPEG optimization:
//
//	svc := ioutils.NewImageService()
//
//	// Fit within 1024x1024 and re-encode in the original format
//	out, format, _ := svc.Optimize(ctx, imageData, 1024, 90)
package ioutils
