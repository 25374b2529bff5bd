//////////////////////////////////////////////////////////////////////////////
//
// Multipart framing for MJPEG over HTTP
//
// Each JPEG is sent as one part of a multipart/x-mixed-replace body. The
// client replaces the displayed image with every part it receives. No
// closing delimiter is written; the next part's boundary follows the
// previous image bytes directly.
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package mjpegcast

import (
	"io"
	"strconv"
)

const (
	// Boundary separating parts of the stream.
	Boundary = "boundarydonotcross"

	// StreamContentType is the Content-Type of a streaming response.
	StreamContentType = "multipart/x-mixed-replace;boundary=" + Boundary
)

// PartHeader returns the envelope preceding a JPEG of n bytes.
func PartHeader(n int) []byte {
	return appendPartHeader(make([]byte, 0, 80), n)
}

func appendPartHeader(b []byte, n int) []byte {
	b = append(b, "--"+Boundary+"\r\n"...)
	b = append(b, "Content-Length:"...)
	b = strconv.AppendInt(b, int64(n), 10)
	b = append(b, "\r\nContent-Type:image/jpeg\r\n\r\n"...)
	return b
}

// FramePart wraps jpeg in its multipart envelope. The result is a new slice;
// jpeg is not modified.
func FramePart(jpeg []byte) []byte {
	b := make([]byte, 0, 80+len(jpeg))
	b = appendPartHeader(b, len(jpeg))
	return append(b, jpeg...)
}

// WritePart writes jpeg as one multipart part to w.
func WritePart(w io.Writer, jpeg []byte) (int, error) {
	n, err := w.Write(PartHeader(len(jpeg)))
	if err != nil {
		return n, err
	}
	m, err := w.Write(jpeg)
	return n + m, err
}
