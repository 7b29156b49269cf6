// Package profile provides optional runtime profiling for snare front-ends.
//
// It integrates [github.com/pkg/profile] behind conditional compilation:
// profiling must be enabled at build time with the "pprof" build tag.
// When built without the tag (the default), every operation is a no-op
// with zero runtime overhead.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profile files are written to the configured directory with names
// matching the profiling mode (e.g. cpu.pprof, mem.pprof). Use [Modes] to
// list the modes supported by the current build.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Profiler configures and initializes the profiler.
type Profiler struct {
	// Mode selects the profile to collect. An empty mode disables
	// profiling.
	Mode string
	// Path is the output directory for profile files.
	Path string
	// Quiet suppresses the profiler's own logging.
	Quiet bool
}

// Start initializes the profiler and returns an interface for stopping it.
//
// If the pprof build tag or p.Mode is unset, Start returns a no-op
// implementation. Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}
