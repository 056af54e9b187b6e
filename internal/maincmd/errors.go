package maincmd

import "errors"

// errCommandFailed is returned by a command when at least one input file
// failed to read or produced a diagnostic; the diagnostic itself has
// already been printed, so the caller just needs a non-nil sentinel to
// select a failure exit code.
var errCommandFailed = errors.New("maincmd: one or more files failed")
