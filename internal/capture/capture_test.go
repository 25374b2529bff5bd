package capture

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/mjpegcast/internal/color"
)

var testConfig = Config{Width: 32, Height: 18, FPS: 30}

func TestOpenSourceRegistry(t *testing.T) {
	assert.Subset(t, SourceTypes(), []string{"file", "noise", "test", "v4l2"})

	src, err := OpenSource("test:", testConfig)
	require.NoError(t, err)
	defer src.Close()
	assert.IsType(t, &Pattern{}, src)

	src, err = OpenSource("noise", testConfig)
	require.NoError(t, err)
	defer src.Close()
	assert.IsType(t, &Noise{}, src)
}

func TestOpenSourceUnknownTag(t *testing.T) {
	_, err := OpenSource("bogus:/x", testConfig)
	require.Error(t, err)
	assert.Equal(t, errNotRegistered, errors.Cause(err))
}

func TestOpenSourceMissingFile(t *testing.T) {
	_, err := OpenSource("file:/nonexistent/image.png", testConfig)
	assert.Error(t, err)
}

func TestPatternAdvances(t *testing.T) {
	p := NewPattern(testConfig.Width, testConfig.Height)

	a, err := p.Capture()
	require.NoError(t, err)
	b, err := p.Capture()
	require.NoError(t, err)

	assert.Equal(t, color.RGB24, a.Format)
	assert.Len(t, a.Pix, color.RGB24.FrameSize(32, 18))
	assert.NotEqual(t, a.Pix, b.Pix)

	require.NoError(t, p.Close())
	_, err = p.Capture()
	assert.Equal(t, ErrClosed, err)
}

func TestNoise(t *testing.T) {
	n := NewNoise(16, 8)
	pic, err := n.Capture()
	require.NoError(t, err)
	assert.Equal(t, color.Gray8, pic.Format)
	assert.Len(t, pic.Pix, 16*8)

	rgba, err := pic.RGBA()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), rgba.Bounds())
}

func TestStill(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Pix[0] = 0xaa
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	s, err := NewStill(&buf)
	require.NoError(t, err)

	pic, err := s.Capture()
	require.NoError(t, err)
	assert.Equal(t, 4, pic.Width)
	assert.Equal(t, 2, pic.Height)
	assert.Equal(t, byte(0xaa), pic.Pix[0])

	_, err = NewStill(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestBlank(t *testing.T) {
	pic := Blank(320, 180)
	assert.Len(t, pic.Pix, 320*180*3)
	for _, b := range pic.Pix {
		if b != 0 {
			t.Fatal("blank picture is not black")
		}
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted(NewPattern(8, 8), 2, 3)

	_, err := s.Capture()
	assert.NoError(t, err)
	_, err = s.Capture()
	assert.Equal(t, ErrScripted, err)
	_, err = s.Capture()
	assert.Equal(t, ErrScripted, err)
	_, err = s.Capture()
	assert.NoError(t, err)
	assert.Equal(t, 4, s.Count())
}
