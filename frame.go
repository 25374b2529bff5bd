//////////////////////////////////////////////////////////////////////////////
//
// Encoded video frames shared by all subscribers
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package mjpegcast

import "time"

// A Frame is one encoded JPEG picture together with its multipart envelope.
// Frames are immutable once published and are shared (not copied) between
// subscriber queues; consumers must not modify the returned slices.
type Frame struct {
	// Publish order, starting at 1.
	Seq uint64

	// When the frame was published.
	Time time.Time

	jpeg []byte
	part []byte
}

func newFrame(seq uint64, jpeg []byte) *Frame {
	return &Frame{
		Seq:  seq,
		Time: time.Now(),
		jpeg: jpeg,
		part: FramePart(jpeg),
	}
}

// JPEG returns the encoded image.
func (f *Frame) JPEG() []byte {
	return f.jpeg
}

// Part returns the image wrapped in its multipart/x-mixed-replace envelope,
// ready to be written to a streaming client.
func (f *Frame) Part() []byte {
	return f.part
}

// Len returns the size of the encoded image in bytes.
func (f *Frame) Len() int {
	return len(f.jpeg)
}
