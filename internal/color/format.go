// Copyright 2019 Lanikai Labs. All rights reserved.

// Package color converts raw capture buffers into the RGBA layout consumed by
// the JPEG encoder.
package color

import (
	"fmt"
)

// Format identifies the memory layout of a raw capture buffer.
type Format int

const (
	RGB24  Format = iota // R, G, B
	BGR24                // B, G, R (OpenCV style)
	BGRA32               // B, G, R, A (DirectShow style)
	YUYV                 // Y0, U, Y1, V for each pair of pixels
	Gray8                // single luma byte
	RGBA32               // R, G, B, A (image.RGBA)
)

func (f Format) String() string {
	switch f {
	case RGB24:
		return "RGB24"
	case BGR24:
		return "BGR24"
	case BGRA32:
		return "BGRA32"
	case YUYV:
		return "YUYV"
	case Gray8:
		return "Gray8"
	case RGBA32:
		return "RGBA32"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FrameSize returns the number of bytes of a tightly packed width x height
// buffer in this format.
func (f Format) FrameSize(width, height int) int {
	switch f {
	case RGB24, BGR24:
		return 3 * width * height
	case BGRA32, RGBA32:
		return 4 * width * height
	case YUYV:
		return 2 * width * height
	case Gray8:
		return width * height
	default:
		return 0
	}
}
