// Package config provides configuration management for resource-pipeline.
//
// This package handles:
//   - Loading and saving settings from YAML (or JSON) files
//   - Default configuration values
//   - Conversion to the option structs used by the transformers
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// .wav files are encoded to .aac with afconvert
//	// inputs are processed one at a time
//	// directories are recreated without their descendants
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/pipeline.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.MaxConcurrentInputs = 4
//	err := settings.Save("/path/to/pipeline.yaml")
//
// # Configuration Options
//
// Settings includes options for:
//   - The external audio encoder and the extensions it handles
//   - Directory mirroring
//   - Image optimization limits
//   - Concurrency and exclude patterns for the processor
//   - Manifest output
package config
