package transform

import (
	"errors"
	"fmt"
	"strings"
)

// Factory constructs a transformer from the registry options.
type Factory func(opts *Options) Transformer

// Info describes a registered transformer.
type Info struct {
	Name        string
	Description string
}

// UnknownTransformerError is returned when a name is not registered.
type UnknownTransformerError struct {
	Name  string
	Known []string
}

func (e *UnknownTransformerError) Error() string {
	return fmt.Sprintf("unknown transformer %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

type registration struct {
	info    Info
	factory Factory
}

// Registry maps transformer names to factories. Names are matched
// case-insensitively; Names returns them in registration order.
type Registry struct {
	opts    *Options
	entries map[string]registration
	order   []string
}

// NewRegistry creates an empty registry whose factories receive opts.
// If opts is nil, DefaultOptions() is used.
func NewRegistry(opts *Options) *Registry {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Registry{
		opts:    opts,
		entries: make(map[string]registration),
	}
}

// DefaultRegistry creates a registry holding every built-in transformer.
func DefaultRegistry(opts *Options) *Registry {
	r := NewRegistry(opts)
	r.mustRegister(NameWAV2AAC, "encode audio files with the external encoder", func(o *Options) Transformer {
		return NewAudioConvert(o.Encoder, o.AudioExtensions, o.AudioTargetExtension)
	})
	r.mustRegister(NameImageOptimize, "downsize and recompress PNG/JPEG files", func(o *Options) Transformer {
		return NewImageOptimize(o.ImageMaxSize, o.ImageJPEGQuality)
	})
	r.mustRegister(NameID3Tag, "copy MP3 files and normalize their ID3 tags", func(o *Options) Transformer {
		return NewID3Tag(o.TagTitleFromFileName, o.TagClearComments)
	})
	r.mustRegister(NameMkdir, "recreate directories under the output", func(o *Options) Transformer {
		return NewMkdir(o.MirrorDirectoryTree)
	})
	r.mustRegister(NameCopy, "copy any regular file", func(*Options) Transformer {
		return NewCopy()
	})
	return r
}

// Register adds a factory under name. Empty and duplicate names are rejected.
func (r *Registry) Register(name, description string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("transformer name must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("transformer %q: nil factory", name)
	}
	key := strings.ToLower(name)
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("transformer %q already registered", name)
	}
	r.entries[key] = registration{info: Info{Name: name, Description: description}, factory: factory}
	r.order = append(r.order, key)
	return nil
}

func (r *Registry) mustRegister(name, description string, factory Factory) {
	if err := r.Register(name, description, factory); err != nil {
		panic(err)
	}
}

// Resolve constructs a new instance of the named transformer.
func (r *Registry) Resolve(name string) (Transformer, error) {
	entry, ok := r.entries[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownTransformerError{Name: name, Known: r.Names()}
	}
	return entry.factory(r.opts), nil
}

// ResolveChain resolves a comma-separated list of names into a chain in the
// given order. Blank entries are ignored; the first unknown name aborts.
//
// Example:
//
//	chain, err := reg.ResolveChain("WAV2AAC, Copy")
func (r *Registry) ResolveChain(list string) ([]Transformer, error) {
	var chain []Transformer
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, t)
	}
	return chain, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, key := range r.order {
		names[i] = r.entries[key].info.Name
	}
	return names
}

// Infos returns name and description of every registered transformer.
func (r *Registry) Infos() []Info {
	infos := make([]Info, len(r.order))
	for i, key := range r.order {
		infos[i] = r.entries[key].info
	}
	return infos
}
