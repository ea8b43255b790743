package opts

import (
	"io"

	"github.com/walteh/wtcopy/pkg/operation"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string // --config, empty means discover at the repository root
	Debug      bool   // --debug
	BaseRef    string // --base

	// WorkDir is where the source repository is looked up, empty means the
	// process working directory.
	WorkDir string
	// Stdout receives console output.
	Stdout io.Writer
	// Open opens the source repository.
	Open operation.OpenFunc
}
