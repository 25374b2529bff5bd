package v4l2

// Config describes the capture geometry requested from the driver. The driver
// may round the geometry; the values actually negotiated are reported by the
// device after Open.
type Config struct {
	Width  int // Video width in pixels
	Height int // Video height in pixels
	FPS    int // Requested frame rate, 0 leaves the driver default

	// Pixel format fourcc. Zero selects YUYV, which virtually every UVC
	// webcam supports.
	Format uint32

	// Number of memory-mapped kernel buffers. Zero selects 4.
	Buffers int
}
