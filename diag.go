package mjpegcast

import (
	"image"
	"image/color"
	"math/rand"
	"net/http"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DiagnosticImage renders msg in white over gray noise.
func DiagnosticImage(width, height int, msg string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		v := byte(rand.Intn(128))
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	x := (fixed.I(width) - d.MeasureString(msg)) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.I((height + face.Ascent) / 2)}
	d.DrawString(msg)
	return img
}

// handleBroadcast publishes a one-off frame carrying the path message to
// every subscriber. Intended for checking connectivity of viewers.
func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	msg := r.PathValue("msg")

	jpeg, err := s.enc.Encode(DiagnosticImage(s.cfg.Width, s.cfg.Height, msg))
	if err != nil {
		log.Warn("diagnostic frame: %v", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	f := s.b.Publish(jpeg)
	if f == nil {
		http.Error(w, "broadcaster closed", http.StatusServiceUnavailable)
		return
	}

	log.Info("Broadcast diagnostic frame %d: %q", f.Seq, msg)
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("msg sent"))
}
