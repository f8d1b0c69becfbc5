// Package prof provides profiling utilities for the keyboard converter.
//
// This package wraps [runtime/pprof] with the small surface the converter
// needs: CPU profiling of the dispatch and decoder loops, and point-in-time
// snapshots. It is conditionally compiled using the "profile" build tag:
//
//	go build -tags profile
//
// When built without the "profile" tag, all exported functions become no-ops,
// so profiling hooks (the sim-keyboard example's -cpuprofile flag) remain in
// place without overhead in production builds.
//
// When built with the "profile" tag, the package also registers HTTP
// handlers at /debug/pprof/ via [net/http/pprof] on localhost:6060.
//
// CPU profiling streams samples and requires explicit start/stop:
//
//	prof.StartCPU("cpu.prof")
//	defer prof.StopCPU()
//
// Other profiles capture a snapshot:
//
//	prof.Write(prof.ProfileHeap, "heap.prof")
//	prof.Write(prof.ProfileGoroutine, "goroutine.prof")
//
// [ProfileCPU] cannot be used with [Write]; use [StartCPU]/[StopCPU].
package prof
