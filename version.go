// Package atmention is an inline @mention component for Bubble Tea rich-text
// editors. The packages below it hold the slot document model, the component
// host, and the mention widget itself.
package atmention

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version in SemVer form, without a leading "v".
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag for Version.
func VersionTag() string {
	return "v" + Version()
}
