// Package transform provides the transformers that turn input resources
// into build outputs, and the registry that constructs them by name.
//
// # Transformers
//
// A Transformer decides whether it can handle a path and, if so, writes
// its output into a directory:
//
//	t := transform.NewCopy()
//	if t.CanProcess("sfx/hit.txt") {
//	    target, err := t.Apply(ctx, "sfx/hit.txt", "build/res")
//	}
//
// Built-in transformers:
//   - Copy: byte copy of any regular file (the conventional catch-all)
//   - Mkdir: recreates a directory, optionally with its sub-directories
//   - WAV2AAC: runs an external encoder on .wav files, writing .aac
//   - ImageOptimize: downsizes and recompresses PNG and JPEG files
//   - ID3Tag: copies .mp3 files and normalizes their ID3v2 tags
//
// # Registry
//
// The Registry maps names to factories. Chains are resolved from the
// comma-separated list given on the command line, keeping caller order:
//
//	reg := transform.DefaultRegistry(transform.DefaultOptions())
//	chain, err := reg.ResolveChain("WAV2AAC,Copy")
//	var unknown *transform.UnknownTransformerError
//	if errors.As(err, &unknown) {
//	    fmt.Println(reg.Names())
//	}
//
// # Errors
//
// Apply failures are reported as *ApplyError, which wraps the underlying
// filesystem or process error.
package transform
