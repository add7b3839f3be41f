// Package version reports how the linuxterm binary was built.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Set at release time, e.g.
	// -ldflags "-X github.com/Lesliedc339/linux-terminal/pkg/version.Version=v0.3.0".
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	BuiltBy   = "unknown"
	GoVersion = runtime.Version()
)

// Info is what `linuxterm version` prints.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the ldflags values and the running platform.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		BuiltBy:   BuiltBy,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// GetVersion is the bare version, as cobra's --version flag shows it.
func GetVersion() string {
	return Version
}

// String is the multi-line form used by `linuxterm version`.
func (i Info) String() string {
	return fmt.Sprintf("linuxterm version %s\ncommit: %s\nbuilt: %s\nby: %s\ngo: %s\nplatform: %s",
		i.Version, i.Commit, i.Date, i.BuiltBy, i.GoVersion, i.Platform)
}

// ShortString is the one-line form used by `linuxterm version --short`.
func (i Info) ShortString() string {
	return fmt.Sprintf("linuxterm version %s", i.Version)
}