package mjpegcast

import "github.com/lanikai/mjpegcast/internal/logging"

var log = logging.New("mjpeg")
