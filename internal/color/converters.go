// Copyright 2019 Lanikai Labs. All rights reserved.

package color

import (
	"image"
	stdcolor "image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

var errShortBuffer = errors.New("color: buffer shorter than frame size")

// ToRGBA converts a tightly packed buffer into a newly allocated RGBA image of
// the given dimensions.
func ToRGBA(pix []byte, format Format, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("color: invalid dimensions %dx%d", width, height)
	}
	if need := format.FrameSize(width, height); need == 0 {
		return nil, errors.Errorf("color: unsupported format %v", format)
	} else if len(pix) < need {
		return nil, errors.Wrapf(errShortBuffer, "%v %dx%d needs %d bytes, have %d",
			format, width, height, need, len(pix))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	switch format {
	case RGB24:
		packed3ToRGBA(dst, pix, 0, 2)
	case BGR24:
		packed3ToRGBA(dst, pix, 2, 0)
	case BGRA32:
		BGRAToRGBA(dst, pix)
	case YUYV:
		YUYVToRGBA(dst, pix)
	case RGBA32:
		copy(dst.Pix, pix)
	case Gray8:
		for i, y := range pix[:width*height] {
			dst.Pix[4*i+0] = y
			dst.Pix[4*i+1] = y
			dst.Pix[4*i+2] = y
			dst.Pix[4*i+3] = 0xff
		}
	}
	return dst, nil
}

// packed3ToRGBA copies 3-byte pixels, taking red from offset r and blue from
// offset b. Green is always in the middle.
func packed3ToRGBA(dst *image.RGBA, src []byte, r, b int) {
	n := len(dst.Pix) / 4
	for i := 0; i < n; i++ {
		dst.Pix[4*i+0] = src[3*i+r]
		dst.Pix[4*i+1] = src[3*i+1]
		dst.Pix[4*i+2] = src[3*i+b]
		dst.Pix[4*i+3] = 0xff
	}
}

// BGRAToRGBA swaps the red and blue channels. Alpha is forced opaque since
// capture drivers commonly leave it zero.
func BGRAToRGBA(dst *image.RGBA, src []byte) {
	n := len(dst.Pix) / 4
	for i := 0; i < n; i++ {
		dst.Pix[4*i+0] = src[4*i+2]
		dst.Pix[4*i+1] = src[4*i+1]
		dst.Pix[4*i+2] = src[4*i+0]
		dst.Pix[4*i+3] = 0xff
	}
}

// YUYVToRGBA converts YUYV (i.e. YUY2) packed 4:2:2 to RGBA. Each 4-byte group
// carries two luma samples sharing one chroma pair.
func YUYVToRGBA(dst *image.RGBA, src []byte) {
	n := len(dst.Pix) / 8
	for i := 0; i < n; i++ {
		y0, u, y1, v := src[4*i], src[4*i+1], src[4*i+2], src[4*i+3]

		r, g, b := stdcolor.YCbCrToRGB(y0, u, v)
		dst.Pix[8*i+0], dst.Pix[8*i+1], dst.Pix[8*i+2], dst.Pix[8*i+3] = r, g, b, 0xff

		r, g, b = stdcolor.YCbCrToRGB(y1, u, v)
		dst.Pix[8*i+4], dst.Pix[8*i+5], dst.Pix[8*i+6], dst.Pix[8*i+7] = r, g, b, 0xff
	}
}

// Scale resamples img to exactly width x height. If img already has those
// dimensions and is RGBA it is returned unchanged.
func Scale(img image.Image, width, height int) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Dx() == width && b.Dy() == height && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
