package utils

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type SystemMetrics struct {
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	MemoryTotalBytes  uint64  `json:"memory_total_bytes"`
	Goroutines        int     `json:"goroutines"`
}

// GetCPUUsage returns host CPU usage as a percentage. A zero interval
// compares against the previous call instead of blocking.
func GetCPUUsage(interval time.Duration) float64 {
	percentage, err := cpu.Percent(interval, false)
	if err != nil {
		slog.Warn("error getting CPU usage", "error", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

func GetSystemMetrics() SystemMetrics {
	m := SystemMetrics{
		CPUPercent: GetCPUUsage(0),
		Goroutines: runtime.NumGoroutine(),
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		slog.Warn("error getting memory usage", "error", err)
		return m
	}
	m.MemoryUsedPercent = vm.UsedPercent
	m.MemoryTotalBytes = vm.Total
	return m
}
