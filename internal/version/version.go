package version

import "github.com/fatih/color"

// Build metadata for the grok CLI, overridable via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders v with its major, minor and patch parts highlighted. A
// string that is not dotted major.minor.patch comes back unchanged.
func Colored(v string, enabled bool) string {
	major, rest, ok := cut(v)
	if !ok {
		return v
	}
	minor, rest, ok := cut(rest)
	if !ok {
		return v
	}
	patch, suffix := rest, ""
	for i, r := range rest {
		if r < '0' || r > '9' {
			patch, suffix = rest[:i], rest[i:]
			break
		}
	}
	if patch == "" {
		return v
	}
	paint := func(c *color.Color, s string) string {
		if !enabled {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	return paint(majorColor, major) + "." + paint(minorColor, minor) + "." + paint(patchColor, patch) + suffix
}

func cut(s string) (head, tail string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s[:i], s[i+1:], i > 0
		}
	}
	return "", "", false
}
