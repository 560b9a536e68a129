package kairos

import "github.com/shirou/gopsutil/v3/mem"

// MemorySampler supplies the free physical memory of the node in
// decimal gigabytes. A profiler configured with a sampler (see
// [Profiler.WithMemorySampler]) appends the reading to every start and
// stop log line. A failed sample degrades to a zero reading; it never
// interrupts timing.
type MemorySampler func() (float64, error)

// NodeFreeMemory reports the available physical memory of the node in
// decimal gigabytes.
func NodeFreeMemory() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return float64(vm.Available) * 1e-9, nil
}
