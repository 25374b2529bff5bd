package logging

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Logging level. Higher values indicate more verbosity.
type Level int

const (
	Error Level = iota - 2
	Warn
	Info
	Debug

	// Numeric trace levels are allowed up to 9.
	MaxLevel Level = 9
)

type levelStyle struct {
	name   string
	letter byte
	color  *color.Color
}

var (
	levelStyles = map[Level]levelStyle{
		Error: {"Error", 'E', color.New(color.FgRed, color.Bold)},
		Warn:  {"Warn", 'W', color.New(color.FgYellow)},
		Info:  {"Info", 'I', color.New(color.Reset)},
		Debug: {"Debug", 'D', color.New(color.FgGreen)},
	}
	traceStyle = color.New(color.FgCyan)
)

// ParseLevel accepts a level name, its first letter, "trace", or a number
// between -2 and 9.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "E", "ERROR":
		return Error, nil
	case "W", "WARN", "WARNING":
		return Warn, nil
	case "I", "INFO":
		return Info, nil
	case "D", "DEBUG":
		return Debug, nil
	case "T", "TRACE":
		return MaxLevel, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("invalid logging level %q", s)
	}
	if level := Level(n); level >= Error && level <= MaxLevel {
		return level, nil
	}
	return 0, errors.Errorf("numeric logging level out of range: %s", s)
}

func (l Level) String() string {
	if s, ok := levelStyles[l]; ok {
		return s.name
	}
	return strconv.Itoa(int(l))
}

func (l Level) letter() byte {
	if s, ok := levelStyles[l]; ok {
		return s.letter
	}
	return byte('0' + l)
}

func (l Level) color() *color.Color {
	if s, ok := levelStyles[l]; ok {
		return s.color
	}
	return traceStyle
}
