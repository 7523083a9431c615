package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SystemInfo describes the machine a render runs on
type SystemInfo struct {
	CPUModel     string  `json:"cpuModel"`
	LogicalCores int     `json:"logicalCores"`
	ClockGHz     float64 `json:"clockGHz"`
	TotalRAMGB   uint64  `json:"totalRamGB"`
}

// GetSystemInfo queries CPU and memory details
func GetSystemInfo() (SystemInfo, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("failed to read CPU info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return SystemInfo{}, fmt.Errorf("no CPU information available")
	}

	logical, err := cpu.Counts(true)
	if err != nil || logical <= 0 {
		logical = runtime.NumCPU()
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("failed to read memory info: %w", err)
	}

	return SystemInfo{
		CPUModel:     cpuInfo[0].ModelName,
		LogicalCores: logical,
		ClockGHz:     cpuInfo[0].Mhz / 1000,
		TotalRAMGB:   memInfo.Total / (1024 * 1024 * 1024),
	}, nil
}

// String formats the info for log lines
func (si SystemInfo) String() string {
	return fmt.Sprintf("%s, %d logical cores @ %.2f GHz, %d GB RAM",
		si.CPUModel, si.LogicalCores, si.ClockGHz, si.TotalRAMGB)
}

// DefaultWorkerCount returns the number of logical CPUs, falling back to runtime.NumCPU
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
