// Package prof wraps the runtime's CPU, heap, and trace profilers behind
// start/stop pairs the CLI can hang off its pre/post run hooks.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

var (
	cpuFile   *os.File
	traceFile *os.File
)

// StartCPU begins CPU profiling into the file at path. The profile stays
// open until StopCPU.
func StartCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("cpu profile %s: %w", path, err)
	}
	cpuFile = f
	return nil
}

// StopCPU flushes and closes the active CPU profile, if any.
func StopCPU() {
	pprof.StopCPUProfile()
	if cpuFile != nil {
		_ = cpuFile.Close()
		cpuFile = nil
	}
}

// WriteMem snapshots the heap into the file at path, forcing a GC first
// so the profile reflects live objects.
func WriteMem(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("heap profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("heap profile %s: %w", path, err)
	}
	return nil
}

// StartTrace begins an execution trace into the file at path. The trace
// stays open until StopTrace.
func StartTrace(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace %s: %w", path, err)
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("trace %s: %w", path, err)
	}
	traceFile = f
	return nil
}

// StopTrace ends the active execution trace, if any.
func StopTrace() {
	trace.Stop()
	if traceFile != nil {
		_ = traceFile.Close()
		traceFile = nil
	}
}
