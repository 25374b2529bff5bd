//go:build linux

package v4l2

import (
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
	errors "golang.org/x/xerrors"
)

// ErrTimeout is returned by ReadFrame when no frame arrives in time.
var ErrTimeout = errors.New("v4l2: timed out waiting for frame")

// A Device is an open V4L2 capture device streaming into memory-mapped
// buffers.
type Device struct {
	// Device path, usually "/dev/video0".
	path string

	// File descriptor of v4l2 device.
	fd int

	// Negotiated format.
	width, height int
	format        uint32

	// Memory-mapped kernel buffers, indexed by v4l2 buffer index.
	buffers [][]byte

	streaming bool
}

// Open a V4L2 video device and negotiate the capture format.
func Open(path string, cfg Config) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK|unix.O_CLOEXEC, 0666)
	if err != nil {
		return nil, errors.Errorf("v4l2: open %s: %w", path, err)
	}
	dev := &Device{path: path, fd: fd}

	if err := dev.init(cfg); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return dev, nil
}

func (dev *Device) init(cfg Config) error {
	var caps v4l2_capability
	if err := dev.ioctl(VIDIOC_QUERYCAP, unsafe.Pointer(&caps)); err != nil {
		return errors.Errorf("v4l2: %s: query capabilities: %w", dev.path, err)
	}
	c := caps.capabilities
	if c&V4L2_CAP_DEVICE_CAPS != 0 {
		c = caps.device_caps
	}
	if c&V4L2_CAP_VIDEO_CAPTURE == 0 || c&V4L2_CAP_STREAMING == 0 {
		return errors.Errorf("v4l2: %s is not a streaming capture device", dev.path)
	}

	format := cfg.Format
	if format == 0 {
		format = V4L2_PIX_FMT_YUYV
	}
	if err := dev.setPixelFormat(cfg.Width, cfg.Height, format); err != nil {
		return err
	}

	if cfg.FPS > 0 {
		// Not every driver supports frame interval selection.
		if err := dev.setFrameRate(cfg.FPS); err != nil {
			log.Warn("%s: cannot set frame rate %d: %v", dev.path, cfg.FPS, err)
		}
	}

	n := cfg.Buffers
	if n <= 0 {
		n = 4
	}
	return dev.mapMemory(n)
}

func (dev *Device) Path() string   { return dev.path }
func (dev *Device) Width() int     { return dev.width }
func (dev *Device) Height() int    { return dev.height }
func (dev *Device) Format() uint32 { return dev.format }

func (dev *Device) Close() error {
	if err := dev.Stop(); err != nil {
		log.Warn("%s: stop: %v", dev.path, err)
	}
	if err := dev.unmapMemory(); err != nil {
		log.Warn("%s: unmap: %v", dev.path, err)
	}
	return unix.Close(dev.fd)
}

func (dev *Device) ioctl(request uint, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(
			unix.SYS_IOCTL,
			uintptr(dev.fd),
			uintptr(request),
			uintptr(arg),
		)
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		default:
			return errno
		}
	}
}

func (dev *Device) setPixelFormat(width, height int, format uint32) error {
	var f v4l2_format
	f.typ = V4L2_BUF_TYPE_VIDEO_CAPTURE
	f.fmt.pix = v4l2_pix_format{
		width:       uint32(width),
		height:      uint32(height),
		pixelformat: format,
		field:       V4L2_FIELD_NONE,
	}
	if err := dev.ioctl(VIDIOC_S_FMT, unsafe.Pointer(&f)); err != nil {
		return errors.Errorf("v4l2: %s: set format %dx%d: %w", dev.path, width, height, err)
	}

	// The driver writes back the format it actually selected.
	if f.fmt.pix.pixelformat != format {
		return errors.Errorf("v4l2: %s: pixel format %08x not supported", dev.path, format)
	}
	dev.width = int(f.fmt.pix.width)
	dev.height = int(f.fmt.pix.height)
	dev.format = format
	if dev.width != width || dev.height != height {
		log.Info("%s: driver selected %dx%d instead of %dx%d", dev.path, dev.width, dev.height, width, height)
	}
	return nil
}

func (dev *Device) setFrameRate(fps int) error {
	var p v4l2_streamparm
	p.typ = V4L2_BUF_TYPE_VIDEO_CAPTURE
	p.parm.capture.timeperframe = v4l2_fract{numerator: 1, denominator: uint32(fps)}
	return dev.ioctl(VIDIOC_S_PARM, unsafe.Pointer(&p))
}

// Request kernel buffers and map each of them into user space.
func (dev *Device) mapMemory(n int) error {
	rb := v4l2_requestbuffers{
		count:  uint32(n),
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	if err := dev.ioctl(VIDIOC_REQBUFS, unsafe.Pointer(&rb)); err != nil {
		return errors.Errorf("v4l2: %s: request buffers: %w", dev.path, err)
	}
	if rb.count == 0 {
		return errors.Errorf("v4l2: %s: driver granted no buffers", dev.path)
	}

	dev.buffers = make([][]byte, 0, rb.count)
	for i := uint32(0); i < rb.count; i++ {
		qb := v4l2_buffer{
			index:  i,
			typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
			memory: V4L2_MEMORY_MMAP,
		}
		if err := dev.ioctl(VIDIOC_QUERYBUF, unsafe.Pointer(&qb)); err != nil {
			return errors.Errorf("v4l2: %s: query buffer %d: %w", dev.path, i, err)
		}
		mem, err := unix.Mmap(dev.fd, int64(qb.offset()), int(qb.length),
			unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return errors.Errorf("v4l2: %s: mmap buffer %d: %w", dev.path, i, err)
		}
		dev.buffers = append(dev.buffers, mem)
	}
	return nil
}

func (dev *Device) unmapMemory() error {
	var first error
	for _, mem := range dev.buffers {
		if err := unix.Munmap(mem); err != nil && first == nil {
			first = err
		}
	}
	dev.buffers = nil
	return first
}

func (dev *Device) enqueue(index uint32) error {
	qb := v4l2_buffer{
		index:  index,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	return dev.ioctl(VIDIOC_QBUF, unsafe.Pointer(&qb))
}

func (dev *Device) dequeue() (v4l2_buffer, error) {
	qb := v4l2_buffer{
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	err := dev.ioctl(VIDIOC_DQBUF, unsafe.Pointer(&qb))
	return qb, err
}

// Start video capture.
func (dev *Device) Start() error {
	if dev.streaming {
		return nil
	}
	for i := range dev.buffers {
		if err := dev.enqueue(uint32(i)); err != nil {
			return errors.Errorf("v4l2: %s: queue buffer %d: %w", dev.path, i, err)
		}
	}
	typ := int32(V4L2_BUF_TYPE_VIDEO_CAPTURE)
	if err := dev.ioctl(VIDIOC_STREAMON, unsafe.Pointer(&typ)); err != nil {
		return errors.Errorf("v4l2: %s: stream on: %w", dev.path, err)
	}
	dev.streaming = true
	return nil
}

// Stop video capture. Outstanding buffers are returned to user space.
func (dev *Device) Stop() error {
	if !dev.streaming {
		return nil
	}
	dev.streaming = false
	typ := int32(V4L2_BUF_TYPE_VIDEO_CAPTURE)
	return dev.ioctl(VIDIOC_STREAMOFF, unsafe.Pointer(&typ))
}

// ReadFrame waits up to timeout for the next captured frame and returns a
// copy of it.
func (dev *Device) ReadFrame(timeout time.Duration) ([]byte, error) {
	if !dev.streaming {
		return nil, errors.New("v4l2: capture not started")
	}

	fds := []unix.PollFd{{Fd: int32(dev.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(timeout/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, errors.Errorf("v4l2: %s: poll: %w", dev.path, err)
		}
		if n == 0 {
			return nil, ErrTimeout
		}
		break
	}

	qb, err := dev.dequeue()
	if err != nil {
		if err == syscall.EAGAIN {
			return nil, ErrTimeout
		}
		return nil, errors.Errorf("v4l2: %s: dequeue: %w", dev.path, err)
	}

	mem := dev.buffers[qb.index]
	n := int(qb.bytesused)
	if n > len(mem) {
		n = len(mem)
	}
	// Copy out before handing the buffer back to the driver.
	out := append([]byte(nil), mem[:n]...)

	if err := dev.enqueue(qb.index); err != nil {
		return out, errors.Errorf("v4l2: %s: requeue buffer %d: %w", dev.path, qb.index, err)
	}
	return out, nil
}
