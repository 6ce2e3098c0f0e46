// Package toolchain invokes the TinyGo binary and parses its output into
// the structures the rest of the tool works with.
package toolchain

import (
	"fmt"
	"strings"
)

// DefaultTarget is the sentinel identifier meaning "no override, use host
// defaults". It is always selectable and never passed to the toolchain.
const DefaultTarget = "-"

// Metadata holds the environment a target resolves to. GOOS and GOARCH may
// legitimately be empty for some targets; GOROOT and BuildTags may not.
type Metadata struct {
	GOOS      string
	GOARCH    string
	GOROOT    string
	BuildTags string
}

// IsZero reports whether no field was resolved.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// GoFlags derives the GOFLAGS value for the target: the build-tag set as a
// comma-separated -tags flag. Empty when the target has no build tags.
func (m Metadata) GoFlags() string {
	if m.BuildTags == "" {
		return ""
	}
	return "-tags=" + strings.ReplaceAll(m.BuildTags, " ", ",")
}

// Env returns the environment mapping the target applies. Empty fields are
// omitted entirely, never included as empty strings.
func (m Metadata) Env() map[string]string {
	env := make(map[string]string)
	if m.GOOS != "" {
		env["GOOS"] = m.GOOS
	}
	if m.GOARCH != "" {
		env["GOARCH"] = m.GOARCH
	}
	if m.GOROOT != "" {
		env["GOROOT"] = m.GOROOT
	}
	if flags := m.GoFlags(); flags != "" {
		env["GOFLAGS"] = flags
	}
	return env
}

// ListTargets runs `<bin> targets` and returns the target identifiers in
// the order the toolchain prints them, one per line.
func ListTargets(r Runner, bin string) ([]string, error) {
	out, err := r.Run(bin, "targets")
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	text := strings.TrimSuffix(string(out), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Resolve runs `<bin> info <target>` and extracts the target's environment.
// For DefaultTarget it returns zero Metadata without invoking the toolchain.
//
// The info output is a sequence of `key: value` lines. Lines without a
// colon and unrecognized keys are ignored so newer toolchains can add
// informational lines freely.
func Resolve(r Runner, bin, target string) (Metadata, error) {
	if target == DefaultTarget {
		return Metadata{}, nil
	}

	out, err := r.Run(bin, "info", target)
	if err != nil {
		return Metadata{}, fmt.Errorf("describe target %s: %w", target, err)
	}

	md := parseInfo(string(out))
	if md.BuildTags == "" {
		return Metadata{}, fmt.Errorf("target %s: missing build tags in toolchain output", target)
	}
	if md.GOROOT == "" {
		return Metadata{}, fmt.Errorf("target %s: missing GOROOT in toolchain output, toolchain may be too old", target)
	}
	return md, nil
}

func parseInfo(out string) Metadata {
	var md Metadata
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "cached GOROOT":
			md.GOROOT = value
		case "build tags":
			md.BuildTags = value
		case "GOOS":
			md.GOOS = value
		case "GOARCH":
			md.GOARCH = value
		}
	}
	return md
}
