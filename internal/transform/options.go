package transform

// EncoderConfig describes the external audio encoder. The input and output
// paths are appended after Args.
type EncoderConfig struct {
	Path string
	Args []string
}

// Options is the configuration the registry hands to transformer factories.
//
// Example:
//
//	opts := DefaultOptions()
//	opts.Encoder = EncoderConfig{Path: "ffmpeg-wrapper", Args: []string{"--aac"}}
//	reg := DefaultRegistry(opts)
type Options struct {
	// Encoder is the external program used by WAV2AAC.
	Encoder EncoderConfig

	// AudioExtensions are the source extensions WAV2AAC accepts.
	AudioExtensions []string

	// AudioTargetExtension replaces the source extension on WAV2AAC outputs.
	AudioTargetExtension string

	// MirrorDirectoryTree makes Mkdir recreate sub-directories as well.
	MirrorDirectoryTree bool

	// ImageMaxSize is the longest edge ImageOptimize keeps; 0 disables resizing.
	ImageMaxSize int

	// ImageJPEGQuality is the quality used when re-encoding JPEG files.
	ImageJPEGQuality int

	// TagTitleFromFileName fills an empty ID3 title from the file name.
	TagTitleFromFileName bool

	// TagClearComments removes ID3 comment frames.
	TagClearComments bool
}

// DefaultOptions returns the options matching config.DefaultSettings.
func DefaultOptions() *Options {
	return &Options{
		Encoder: EncoderConfig{
			Path: "afconvert",
			Args: []string{"-f", "adts", "-d", "aac "},
		},
		AudioExtensions:      []string{".wav"},
		AudioTargetExtension: ".aac",
		ImageMaxSize:         2048,
		ImageJPEGQuality:     90,
		TagTitleFromFileName: true,
		TagClearComments:     true,
	}
}
