// Package session holds a needle/haystack pair of already-built
// graphindex.Index values so repeated queries against the same designs
// don't rebuild them, and runs batches of independent searches concurrently
// over a small CPU-bound worker pool. Neither svql nor search depends on
// this package; it is the peripheral answer to spec's "each task is
// CPU-bound and runs to completion" concurrency note (§5), the way the
// source's own session/* modules sit alongside (not inside) the matching
// core.
package session

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"gopkg.in/yaml.v3"
)

// PoolConfig controls a Runner's worker pool: how many tasks may run at
// once, and the memory ceiling that causes it to shed parallelism under
// pressure.
type PoolConfig struct {
	Workers            int     `yaml:"workers"`
	MemCeilingFraction float64 `yaml:"mem_ceiling_fraction"`
}

// PoolConfigBuilder assembles a PoolConfig with the teacher's chainable
// value-receiver With*/Build idiom (config.DeviceBuilder, api.DriverBuilder).
type PoolConfigBuilder struct {
	cfg PoolConfig
}

// NewPoolConfigBuilder starts from DefaultPoolConfig.
func NewPoolConfigBuilder() PoolConfigBuilder {
	return PoolConfigBuilder{cfg: DefaultPoolConfig()}
}

// WithWorkers overrides the pool width.
func (b PoolConfigBuilder) WithWorkers(n int) PoolConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithMemCeilingFraction sets the fraction of total system memory above
// which the pool sheds a worker.
func (b PoolConfigBuilder) WithMemCeilingFraction(f float64) PoolConfigBuilder {
	b.cfg.MemCeilingFraction = f
	return b
}

// Build returns the assembled PoolConfig.
func (b PoolConfigBuilder) Build() PoolConfig {
	return b.cfg
}

// DefaultPoolConfig sizes the pool from the host's logical CPU count: the
// search is a plain recursive backtracker with no suspension points, so
// width is bounded by CPU availability rather than a ticked clock or I/O
// concurrency limit.
func DefaultPoolConfig() PoolConfig {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	return PoolConfig{Workers: n, MemCeilingFraction: 0.8}
}

// LoadPoolConfig reads a PoolConfig from YAML, mirroring the teacher's YAML
// program-loading convention (core/program.go).
func LoadPoolConfig(path string) (PoolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PoolConfig{}, fmt.Errorf("session: reading pool config %q: %w", path, err)
	}
	cfg := DefaultPoolConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PoolConfig{}, fmt.Errorf("session: parsing pool config %q: %w", path, err)
	}
	return cfg, nil
}

// memoryUnderCeiling reports whether current system memory usage is still
// below cfg's ceiling. Sampling failures are treated as "fine" rather than
// shedding parallelism on a transient read error.
func memoryUnderCeiling(cfg PoolConfig) bool {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return true
	}
	return vm.UsedPercent/100.0 < cfg.MemCeilingFraction
}
