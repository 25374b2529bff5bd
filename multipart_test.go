package mjpegcast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePart(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0x01, 0x02, 0xff, 0xd9}
	part := FramePart(jpeg)

	prefix := "--boundarydonotcross\r\nContent-Length:6\r\nContent-Type:image/jpeg\r\n\r\n"
	assert.Equal(t, prefix, string(part[:len(prefix)]))
	assert.Equal(t, jpeg, part[len(prefix):])
	assert.Len(t, part, len(prefix)+len(jpeg))
}

func TestFramePartEmpty(t *testing.T) {
	assert.Equal(t,
		"--boundarydonotcross\r\nContent-Length:0\r\nContent-Type:image/jpeg\r\n\r\n",
		string(FramePart(nil)))
}

func TestFramePartDoesNotAlias(t *testing.T) {
	jpeg := []byte("abc")
	part := FramePart(jpeg)
	part[len(part)-1] = 'z'
	assert.Equal(t, "abc", string(jpeg))
}

func TestWritePart(t *testing.T) {
	var buf bytes.Buffer
	jpeg := bytes.Repeat([]byte{7}, 1234)

	n, err := WritePart(&buf, jpeg)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)
	assert.Equal(t, FramePart(jpeg), buf.Bytes())
}

func TestStreamContentType(t *testing.T) {
	assert.Equal(t, "multipart/x-mixed-replace;boundary=boundarydonotcross", StreamContentType)
}
