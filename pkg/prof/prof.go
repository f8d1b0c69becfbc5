//go:build profile

package prof

import (
	"errors"
	"net/http"
	"os"
	"runtime/pprof"
	"sync"

	_ "net/http/pprof" // Register HTTP handlers at /debug/pprof/

	"github.com/ardnew/amigakey/pkg"
)

func init() {
	go func() {
		err := http.ListenAndServe("localhost:6060", nil)
		pkg.LogError(pkg.ComponentProf, "pprof server stopped", "error", err)
	}()
}

// Profiling errors.
var (
	// ErrCPUProfileActive indicates CPU profiling is already active.
	ErrCPUProfileActive = errors.New("cpu profile already active")

	// ErrInvalidProfile indicates an invalid or unsupported profile type.
	ErrInvalidProfile = errors.New("invalid profile")
)

// Profile represents a pprof profile type.
type Profile string

// Profile type constants.
const (
	ProfileCPU       Profile = "cpu"
	ProfileHeap      Profile = "heap"
	ProfileAllocs    Profile = "allocs"
	ProfileGoroutine Profile = "goroutine"
	ProfileBlock     Profile = "block"
	ProfileMutex     Profile = "mutex"
)

// String returns the string representation of the profile type.
func (p Profile) String() string {
	return string(p)
}

var (
	cpuMutex  sync.Mutex
	cpuFile   *os.File
	cpuActive bool
)

// StartCPU starts CPU profiling and streams samples to the file at path. The
// dispatch loop and decoder poll loop are the intended subjects. Returns
// [ErrCPUProfileActive] if CPU profiling is already active.
func StartCPU(path string) error {
	cpuMutex.Lock()
	defer cpuMutex.Unlock()

	if cpuActive {
		return ErrCPUProfileActive
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}

	cpuFile = f
	cpuActive = true
	pkg.LogInfo(pkg.ComponentProf, "cpu profile started", "path", path)
	return nil
}

// StopCPU stops CPU profiling. It is safe to call even if profiling is not
// active.
func StopCPU() {
	cpuMutex.Lock()
	defer cpuMutex.Unlock()

	if !cpuActive {
		return
	}

	pprof.StopCPUProfile()
	if cpuFile != nil {
		cpuFile.Close()
		cpuFile = nil
	}
	cpuActive = false
	pkg.LogInfo(pkg.ComponentProf, "cpu profile stopped")
}

// IsCPUActive reports whether CPU profiling is currently active.
func IsCPUActive() bool {
	cpuMutex.Lock()
	defer cpuMutex.Unlock()
	return cpuActive
}

// Write writes a point-in-time snapshot of the named profile to a file at
// the given path. Returns [ErrInvalidProfile] for [ProfileCPU] (use
// [StartCPU]/[StopCPU]) and for profile names the runtime does not know.
func Write(profile Profile, path string) error {
	if profile == ProfileCPU {
		return ErrInvalidProfile
	}
	p := pprof.Lookup(string(profile))
	if p == nil {
		return ErrInvalidProfile
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := p.WriteTo(f, 0); err != nil {
		return err
	}
	pkg.LogInfo(pkg.ComponentProf, "profile written",
		"profile", profile.String(), "path", path)
	return nil
}
