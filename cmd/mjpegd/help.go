package main

import (
	"fmt"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

var (
	flagWidth        int
	flagHeight       int
	flagFPS          int
	flagInput        string
	flagQuality      int
	flagQueue        int
	flagListen       string
	flagMaxClients   int
	flagWriteTimeout string
	flagConfig       string
	flagHelp         bool
	flagVersion      bool
)

func init() {
	flag.IntVarP(&flagWidth, "width", "x", 320, "Video width")
	flag.IntVarP(&flagHeight, "height", "y", 180, "Video height")
	flag.IntVarP(&flagFPS, "fps", "r", 30, "Frames per second")
	flag.StringVarP(&flagInput, "input", "i", "test:", "Capture source")
	flag.IntVarP(&flagQuality, "quality", "q", 75, "JPEG quality")
	flag.IntVarP(&flagQueue, "queue", "", 100, "Frames buffered per client")
	flag.StringVarP(&flagListen, "listen", "l", "127.0.0.1:8080", "HTTP listen address")
	flag.IntVarP(&flagMaxClients, "max-clients", "", 0, "Maximum simultaneous connections")
	flag.StringVarP(&flagWriteTimeout, "write-timeout", "", "10s", "Per-frame write timeout")
	flag.StringVarP(&flagConfig, "config", "c", "", "TOML configuration file")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `Live MJPEG streaming over HTTP

Usage: mjpegd [OPTION]...

Video source:
  -i, --input=SPEC       Capture source (default: test:)
                           v4l2:/dev/videoN  Video4Linux2 camera (YUYV)
                           test:             moving colour bars
                           noise:            random gray noise
                           file:PATH         still JPEG, PNG or GIF image
  -x, --width=NUM        Set video width (default: 320)
  -y, --height=NUM       Set video height (default: 180)
  -r, --fps=NUM          Set frame rate (default: 30)
  -q, --quality=NUM      JPEG quality, 1-100 (default: 75)

Network:
  -l, --listen=ADDR      HTTP listen address (default: 127.0.0.1:8080)
      --max-clients=NUM  Limit simultaneous connections (default: unlimited)
      --queue=NUM        Frames buffered per client before it is dropped
                         (default: 100)
      --write-timeout=D  Drop clients that take longer than D to accept a
                         frame (default: 10s)

Miscellaneous:
  -c, --config=FILE      TOML configuration file
                         (default: ~/.mjpegd/config.toml, if present)
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits

Logging verbosity is controlled by the LOGLEVEL environment variable,
e.g. LOGLEVEL=debug or LOGLEVEL=info,capture=debug.`

// Help information is printed and program exits
func help() {
	r := color.New(color.FgRed)
	y := color.New(color.FgYellow)
	b := color.New(color.FgCyan)

	//             _                  _
	//  _ __ ___ (_)_ __   ___  __ _  __| |
	// | '_ ` _ \| | '_ \ / _ \/ _` |/ _` |
	// | | | | | | | |_) |  __/ (_| | (_| |
	// |_| |_| |_/ | .__/ \___|\__, |\__,_|
	//         |__/|_|         |___/

	// Line 1
	r.Printf("            ")
	y.Printf("_ ")
	b.Printf("                 ")
	y.Println("_")

	// Line 2
	r.Printf(" _ __ ___ ")
	y.Printf("(_)")
	b.Printf("_ __   ___  __ _ ")
	y.Println(" __| |")

	// Line 3
	r.Printf("| '_ ` _ \\")
	y.Printf("| |")
	b.Printf(" '_ \\ / _ \\/ _` |")
	y.Println("/ _` |")

	// Line 4
	r.Printf("| | | | | ")
	y.Printf("| |")
	b.Printf(" |_) |  __/ (_| |")
	y.Println(" (_| |")

	// Line 5
	r.Printf("|_| |_| |_")
	y.Printf("/ |")
	b.Printf(" .__/ \\___|\\__, |")
	y.Println("\\__,_|")

	// Line 6
	r.Printf("        ")
	y.Printf("|__/")
	b.Println("|_|         |___/")

	fmt.Println(helpString)
}

// version displays information and exits successfully (GNU convention)
func version() {
	fmt.Println("mjpegd", GitRevisionId)
	fmt.Println("Copyright 2019 Lanikai Labs LLC. All rights reserved.")
}
