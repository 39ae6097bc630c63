package storypath

import _ "embed"

// Version is the module version, embedded from the VERSION file.
//
//go:embed VERSION
var Version string
