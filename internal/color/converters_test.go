package color

import (
	"image"
	stdcolor "image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBGRAToRGBA(t *testing.T) {
	src := []byte{
		0x01, 0x02, 0x03, 0x00,
		0x10, 0x20, 0x30, 0x00,
	}
	img, err := ToRGBA(src, BGRA32, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x03, 0x02, 0x01, 0xff, 0x30, 0x20, 0x10, 0xff}, img.Pix)
}

func TestBGR24AndRGB24(t *testing.T) {
	bgr, err := ToRGBA([]byte{1, 2, 3}, BGR24, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 2, 1, 0xff}, bgr.Pix)

	rgb, err := ToRGBA([]byte{1, 2, 3}, RGB24, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 0xff}, rgb.Pix)
}

func TestYUYVToRGBA(t *testing.T) {
	// Two pixels: black and white, no chroma.
	src := []byte{16, 128, 235, 128}
	img, err := ToRGBA(src, YUYV, 2, 1)
	require.NoError(t, err)

	r, g, b := stdcolor.YCbCrToRGB(16, 128, 128)
	assert.Equal(t, []byte{r, g, b, 0xff}, img.Pix[0:4])
	r, g, b = stdcolor.YCbCrToRGB(235, 128, 128)
	assert.Equal(t, []byte{r, g, b, 0xff}, img.Pix[4:8])
}

func TestGray8(t *testing.T) {
	img, err := ToRGBA([]byte{0x7f}, Gray8, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7f, 0x7f, 0x7f, 0xff}, img.Pix)
}

func TestToRGBARejectsShortBuffer(t *testing.T) {
	_, err := ToRGBA(make([]byte, 10), RGB24, 4, 4)
	assert.Error(t, err)

	_, err = ToRGBA(nil, Format(42), 4, 4)
	assert.Error(t, err)

	_, err = ToRGBA(nil, RGB24, 0, 4)
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 360))
	dst := Scale(src, 320, 180)
	assert.Equal(t, image.Rect(0, 0, 320, 180), dst.Bounds())

	same := image.NewRGBA(image.Rect(0, 0, 320, 180))
	assert.Same(t, same, Scale(same, 320, 180))
}

func TestFrameSize(t *testing.T) {
	assert.Equal(t, 320*180*3, RGB24.FrameSize(320, 180))
	assert.Equal(t, 320*180*2, YUYV.FrameSize(320, 180))
	assert.Equal(t, 0, Format(99).FrameSize(320, 180))
	assert.Equal(t, "YUYV", YUYV.String())
}

func BenchmarkYUYVToRGBAAt720P(b *testing.B) {
	dst := image.NewRGBA(image.Rect(0, 0, 1280, 720))
	src := make([]byte, YUYV.FrameSize(1280, 720))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		YUYVToRGBA(dst, src)
	}
}
