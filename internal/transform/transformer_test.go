package transform

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
}

func requireTool(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestTargetFilename(t *testing.T) {
	tests := []struct {
		input  string
		outDir string
		ext    string
		want   string
	}{
		{"foo.wav", "out", ".aac", filepath.Join("out", "foo.aac")},
		{"sfx/foo.wav", "out", ".aac", filepath.Join("out", "foo.aac")},
		{"sfx/Foo.WAV", "/abs/out", ".aac", filepath.Join("/abs/out", "Foo.aac")},
		{"foo", "out", ".aac", filepath.Join("out", "foo.aac")},
		{"foo.bar.wav", "out", ".aac", filepath.Join("out", "foo.bar.aac")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := TargetFilename(tt.input, tt.outDir, tt.ext)
			assert.Equal(t, tt.want, got)
			// Applying the rule to its own output is stable.
			assert.Equal(t, got, TargetFilename(got, tt.outDir, tt.ext))
		})
	}
}

func TestCanProcess_MissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.wav")

	for _, tr := range []Transformer{
		NewCopy(),
		NewMkdir(false),
		NewAudioConvert(EncoderConfig{Path: "cp"}, []string{".wav"}, ".aac"),
		NewImageOptimize(0, 90),
		NewID3Tag(true, true),
	} {
		assert.False(t, tr.CanProcess(missing), tr.Name())
	}
}

func TestCanProcess_Predicates(t *testing.T) {
	dir := t.TempDir()
	wav := filepath.Join(dir, "a.wav")
	upper := filepath.Join(dir, "B.WAV")
	txt := filepath.Join(dir, "c.txt")
	sub := filepath.Join(dir, "sub")
	writeFile(t, wav, []byte("wav"))
	writeFile(t, upper, []byte("wav"))
	writeFile(t, txt, []byte("txt"))
	require.NoError(t, os.Mkdir(sub, 0755))
	// A directory named like an audio file is not audio.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.wav"), 0755))

	audio := NewAudioConvert(EncoderConfig{Path: "cp"}, []string{"WAV"}, ".aac")
	assert.True(t, audio.CanProcess(wav))
	assert.True(t, audio.CanProcess(upper))
	assert.False(t, audio.CanProcess(txt))
	assert.False(t, audio.CanProcess(filepath.Join(dir, "dir.wav")))

	cp := NewCopy()
	assert.True(t, cp.CanProcess(wav))
	assert.True(t, cp.CanProcess(txt))
	assert.False(t, cp.CanProcess(sub))

	mkdir := NewMkdir(false)
	assert.True(t, mkdir.CanProcess(sub))
	assert.False(t, mkdir.CanProcess(txt))
}

func TestCopy_Apply(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data", "level.txt")
	out := t.TempDir()
	writeFile(t, src, []byte("level one"))

	target, err := NewCopy().Apply(context.Background(), src, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "level.txt"), target)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "level one", string(got))

	// A later copy overwrites silently.
	writeFile(t, src, []byte("v2"))
	_, err = NewCopy().Apply(context.Background(), src, out)
	require.NoError(t, err)
	got, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestCopy_ApplyErrorWrapsCause(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, src, []byte("a"))

	_, err := NewCopy().Apply(context.Background(), src, filepath.Join(t.TempDir(), "missing", "dir"))
	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, NameCopy, applyErr.Transformer)
	assert.Equal(t, src, applyErr.Input)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMkdir_Apply(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "subdir", "nested", "deep"), 0755))
	writeFile(t, filepath.Join(src, "subdir", "nested", "file.txt"), []byte("x"))

	t.Run("flat", func(t *testing.T) {
		out := t.TempDir()
		target, err := NewMkdir(false).Apply(context.Background(), filepath.Join(src, "subdir")+string(filepath.Separator), out)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(out, "subdir"), target)

		entries, err := os.ReadDir(target)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("mirror", func(t *testing.T) {
		out := t.TempDir()
		target, err := NewMkdir(true).Apply(context.Background(), filepath.Join(src, "subdir"), out)
		require.NoError(t, err)

		info, err := os.Stat(filepath.Join(target, "nested", "deep"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.NoFileExists(t, filepath.Join(target, "nested", "file.txt"))
	})
}

func TestAudioConvert_Apply(t *testing.T) {
	cp := requireTool(t, "cp")
	src := filepath.Join(t.TempDir(), "boom.wav")
	out := t.TempDir()
	writeFile(t, src, []byte("RIFF....WAVE"))

	tr := NewAudioConvert(EncoderConfig{Path: cp}, []string{".wav"}, ".aac")
	target, err := tr.Apply(context.Background(), src, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "boom.aac"), target)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "RIFF....WAVE", string(got))
	assert.NoFileExists(t, filepath.Join(out, "boom.wav"))
}

func TestAudioConvert_ApplyEncoderFailure(t *testing.T) {
	fail := requireTool(t, "false")
	src := filepath.Join(t.TempDir(), "boom.wav")
	writeFile(t, src, []byte("wav"))

	tr := NewAudioConvert(EncoderConfig{Path: fail}, []string{".wav"}, ".aac")
	_, err := tr.Apply(context.Background(), src, t.TempDir())

	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, NameWAV2AAC, applyErr.Transformer)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.NotZero(t, exitErr.ExitCode())
}

func TestAudioConvert_ApplyMissingEncoder(t *testing.T) {
	src := filepath.Join(t.TempDir(), "boom.wav")
	writeFile(t, src, []byte("wav"))

	tr := NewAudioConvert(EncoderConfig{Path: filepath.Join(t.TempDir(), "no-such-encoder")}, []string{".wav"}, ".aac")
	_, err := tr.Apply(context.Background(), src, t.TempDir())

	var applyErr *ApplyError
	assert.ErrorAs(t, err, &applyErr)
}

func TestImageOptimize_Apply(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for x := 0; x < 100; x++ {
		for y := 0; y < 50; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	src := filepath.Join(t.TempDir(), "sprite.png")
	out := t.TempDir()
	writeFile(t, src, buf.Bytes())

	tr := NewImageOptimize(40, 90)
	require.True(t, tr.CanProcess(src))

	target, err := tr.Apply(context.Background(), src, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "sprite.png"), target)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestImageOptimize_ApplyCorruptImage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "broken.png")
	writeFile(t, src, []byte("not a png"))

	_, err := NewImageOptimize(40, 90).Apply(context.Background(), src, t.TempDir())
	var applyErr *ApplyError
	assert.ErrorAs(t, err, &applyErr)
}

func TestImageOptimize_ApplyOntoItself(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 50))))

	dir := t.TempDir()
	src := filepath.Join(dir, "sprite.png")
	writeFile(t, src, buf.Bytes())

	_, err := NewImageOptimize(40, 90).Apply(context.Background(), src, dir)
	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Contains(t, err.Error(), "same file")

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), got)
}

func TestID3Tag_Apply(t *testing.T) {
	src := filepath.Join(t.TempDir(), "theme.mp3")
	out := t.TempDir()
	payload := []byte("fake mpeg frames")
	writeFile(t, src, payload)

	tr := NewID3Tag(true, true)
	require.True(t, tr.CanProcess(src))

	target, err := tr.Apply(context.Background(), src, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "theme.mp3"), target)

	tag, err := id3v2.Open(target, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Equal(t, "theme", tag.Title())

	// The source stays untouched.
	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
