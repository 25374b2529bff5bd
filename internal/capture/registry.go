package capture

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// A function used to open a specific source type. The path is the part of
// the source spec following the first colon.
type OpenFunc func(path string, cfg Config) (Source, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]OpenFunc{}
)

// RegisterSourceType registers a source type, identified by its "source
// tag". Sources of this type will be opened with the given function.
func RegisterSourceType(tag string, open OpenFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[tag] = open
}

// SourceTypes lists the registered source tags in sorted order.
func SourceTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	tags := make([]string, 0, len(registry))
	for t := range registry {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// OpenSource opens a source based on its "source spec", a colon-separated
// string consisting of a source tag and a source path:
//
//	sourceSpec = sourceTag + ":" + sourcePath
//
// The format of the source path is defined by the registered OpenFunc. As a
// convenience, a bare device path such as "/dev/video0" selects v4l2.
func OpenSource(spec string, cfg Config) (Source, error) {
	log.Debug("Registered source types: %v", SourceTypes())

	if strings.HasPrefix(spec, "/dev/video") {
		spec = "v4l2:" + spec
	}

	tag, path := spec, ""
	if i := strings.IndexByte(spec, ':'); i >= 0 {
		tag, path = spec[:i], spec[i+1:]
	}

	registryMu.RLock()
	open, found := registry[tag]
	registryMu.RUnlock()
	if !found {
		return nil, errors.Wrapf(errNotRegistered, "%q", tag)
	}

	src, err := open(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "open source %q", spec)
	}
	return src, nil
}
