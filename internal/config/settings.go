package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/handiism/resource-pipeline/internal/transform"
)

// Settings holds all configuration options.
type Settings struct {
	// Audio encoder settings
	EncoderPath          string   `yaml:"encoder_path" json:"encoder_path"`
	EncoderArgs          []string `yaml:"encoder_args" json:"encoder_args"`
	AudioExtensions      []string `yaml:"audio_extensions" json:"audio_extensions"`
	AudioTargetExtension string   `yaml:"audio_target_extension" json:"audio_target_extension"`

	// Directory settings
	MirrorDirectoryTree bool `yaml:"mirror_directory_tree" json:"mirror_directory_tree"`

	// Image settings
	ImageMaxSize     int `yaml:"image_max_size" json:"image_max_size"`
	ImageJPEGQuality int `yaml:"image_jpeg_quality" json:"image_jpeg_quality"`

	// Tag settings
	TagTitleFromFileName bool `yaml:"tag_title_from_file_name" json:"tag_title_from_file_name"`
	TagClearComments     bool `yaml:"tag_clear_comments" json:"tag_clear_comments"`

	// Processor settings
	MaxConcurrentInputs int      `yaml:"max_concurrent_inputs" json:"max_concurrent_inputs"`
	Exclude             []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	ManifestPath        string   `yaml:"manifest_path,omitempty" json:"manifest_path,omitempty"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		EncoderPath:          "afconvert",
		EncoderArgs:          []string{"-f", "adts", "-d", "aac "},
		AudioExtensions:      []string{".wav"},
		AudioTargetExtension: ".aac",

		MirrorDirectoryTree: false,

		ImageMaxSize:     2048,
		ImageJPEGQuality: 90,

		TagTitleFromFileName: true,
		TagClearComments:     true,

		MaxConcurrentInputs: 1,
	}
}

// Load reads settings from a YAML file. JSON files are accepted as well.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Jobs returns the worker limit for the processor, never less than one.
func (s *Settings) Jobs() int {
	if s.MaxConcurrentInputs < 1 {
		return 1
	}
	return s.MaxConcurrentInputs
}

// ToTransformOptions converts settings to transform.Options.
func (s *Settings) ToTransformOptions() *transform.Options {
	return &transform.Options{
		Encoder: transform.EncoderConfig{
			Path: s.EncoderPath,
			Args: s.EncoderArgs,
		},
		AudioExtensions:      s.AudioExtensions,
		AudioTargetExtension: s.AudioTargetExtension,
		MirrorDirectoryTree:  s.MirrorDirectoryTree,
		ImageMaxSize:         s.ImageMaxSize,
		ImageJPEGQuality:     s.ImageJPEGQuality,
		TagTitleFromFileName: s.TagTitleFromFileName,
		TagClearComments:     s.TagClearComments,
	}
}
