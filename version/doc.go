// Package version reports build metadata for the taskmate binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/taskmate/version.Version=1.2.3 \
//	  -X github.com/ncobase/taskmate/version.Revision=abc123"
//
// Anything left unset falls back to the build info embedded by the Go toolchain.
package version
