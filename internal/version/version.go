// Package version holds build information for onionc.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the compiler.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var segmentColors = []color.Attribute{color.FgYellow, color.FgGreen, color.FgBlue}

// Banner renders "onionc <version> (<commit>, <date>)" with the version
// core coloured per segment when colorize is set.
func Banner(colorize bool) string {
	var sb strings.Builder
	sb.WriteString("onionc ")
	sb.WriteString(colorVersion(Version, colorize))
	var extra []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		extra = append(extra, commit)
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	if len(extra) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(extra, ", "))
	}
	return sb.String()
}

func colorVersion(v string, colorize bool) string {
	if !colorize {
		return v
	}
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	for i, p := range parts {
		c := color.New(segmentColors[i%len(segmentColors)], color.Bold)
		c.EnableColor()
		parts[i] = c.Sprint(p)
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
