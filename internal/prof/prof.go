// Package prof wires optional CPU and heap profiling around a command.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
)

// Options selects the profiles to collect. Empty paths disable a profile.
type Options struct {
	CPUPath string
	MemPath string
}

// Session is an active profiling run.
type Session struct {
	cpuFile *os.File
	memPath string
}

// Start begins CPU profiling when requested. It returns nil when no
// profile is requested.
func Start(opts Options) (*Session, error) {
	if opts.CPUPath == "" && opts.MemPath == "" {
		return nil, nil
	}
	s := &Session{memPath: opts.MemPath}
	if opts.CPUPath != "" {
		// #nosec G304 -- the profile path is chosen by the user
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		s.cpuFile = f
	}
	return s, nil
}

// Stop ends CPU profiling and writes the heap profile. Safe on nil.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.memPath != "" {
		errs = append(errs, writeHeap(s.memPath))
		s.memPath = ""
	}
	return errors.Join(errs...)
}

func writeHeap(path string) (err error) {
	// #nosec G304 -- the profile path is chosen by the user
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
