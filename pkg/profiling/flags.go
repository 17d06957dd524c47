package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/errors"
)

// Flags holds the --cpu-profile, --mem-profile and --timing settings of a
// command tree.
type Flags struct {
	cpuPath string
	memPath string
	timing  bool
	cpuFile *os.File
}

// AddFlags registers the profiling flags as persistent flags of cmd.
func (f *Flags) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.cpuPath, "cpu-profile", "", "Write a CPU profile to this file")
	cmd.PersistentFlags().StringVar(&f.memPath, "mem-profile", "", "Write a heap profile to this file on exit")
	cmd.PersistentFlags().BoolVar(&f.timing, "timing", false, "Print phase timings to stderr on exit")
}

// Before starts profiling. Use it as a PersistentPreRunE hook.
func (f *Flags) Before(cmd *cobra.Command, _ []string) error {
	if f.timing {
		Default.Enable()
	}
	if f.cpuPath == "" {
		return nil
	}

	file, err := os.Create(f.cpuPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "could not create CPU profile").
			WithDetail("path", f.cpuPath)
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		file.Close()
		return errors.Wrap(err, errors.ErrCodeInternal, "could not start CPU profile")
	}
	f.cpuFile = file
	return nil
}

// After writes the profiles and the timing report. Use it as a
// PersistentPostRunE hook.
func (f *Flags) After(cmd *cobra.Command, _ []string) error {
	stderr := cmd.ErrOrStderr()

	if f.cpuFile != nil {
		pprof.StopCPUProfile()
		f.cpuFile.Close()
		f.cpuFile = nil
		fmt.Fprintf(stderr, "CPU profile written to %s\n", f.cpuPath)
	}

	if f.memPath != "" {
		file, err := os.Create(f.memPath)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidInput, "could not create heap profile").
				WithDetail("path", f.memPath)
		}
		defer file.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(file); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "could not write heap profile")
		}
		fmt.Fprintf(stderr, "Heap profile written to %s\n", f.memPath)
	}

	if f.timing {
		Default.Report(stderr)
	}
	return nil
}
