package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version reports the apistub version. Module-aware installs
// (`go install ...@vX.Y.Z`) report the module version from build info;
// anything else counts as a development build and reports the embedded
// VERSION file, suffixed with the VCS revision when the build recorded one.
func Version() string {
	base := "devel-" + strings.TrimSpace(rawVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return base + "+" + s.Value[:7]
		}
	}
	return base
}
