package v4l2

import "github.com/lanikai/mjpegcast/internal/logging"

var log = logging.New("v4l2")
