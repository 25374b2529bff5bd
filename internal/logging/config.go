package logging

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable holding comma-separated logging directives. A bare
// level sets the default; "tag=level" overrides the level for one tag, e.g.
//
//	LOGLEVEL=warn,capture=debug,http=trace
const envVar = "LOGLEVEL"

type directives struct {
	defaultLevel Level
	tagLevels    map[string]Level
}

var active = directives{defaultLevel: Info}

func init() {
	d, errs := parseDirectives(os.Getenv(envVar), Info)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Invalid %s directive: %s\n", envVar, err)
	}
	active = d
	DefaultLogger.Level = d.defaultLevel
}

func parseDirectives(s string, fallback Level) (directives, []error) {
	d := directives{defaultLevel: fallback, tagLevels: make(map[string]Level)}
	var errs []error
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		tag, value := "", item
		if i := strings.IndexByte(item, '='); i >= 0 {
			tag, value = item[:i], item[i+1:]
		}
		level, err := ParseLevel(value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if tag == "" {
			d.defaultLevel = level
		} else {
			d.tagLevels[tag] = level
		}
	}
	return d, errs
}

func (d directives) levelFor(tag string, fallback Level) Level {
	if level, ok := d.tagLevels[tag]; ok {
		return level
	}
	return fallback
}
