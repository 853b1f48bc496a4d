package sandboxeval

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// EngineConfig is the on-disk shape LoadConfig reads: the same knobs
// as the Option functions, expressed as a YAML document so a deployed
// sandbox can be tuned without a code change.
type EngineConfig struct {
	TimeoutMillis           int      `yaml:"timeoutMillis"`
	MaxStackDepth           int      `yaml:"maxStackDepth"`
	ComplexityCap           float64  `yaml:"complexityCap"`
	DepthCap                int      `yaml:"depthCap"`
	StrictMode              *bool    `yaml:"strictMode"`
	CacheSize               int      `yaml:"cacheSize"`
	ExtraBlockedIdentifiers []string `yaml:"extraBlockedIdentifiers"`
}

// LoadConfig reads and parses an EngineConfig document from path.
func LoadConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sandboxeval: reading config %s: %w", path, err)
	}
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("sandboxeval: parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Options converts a loaded EngineConfig into Option values suitable
// for New.
func (c *EngineConfig) Options() []Option {
	var opts []Option
	if c.TimeoutMillis > 0 {
		opts = append(opts, WithTimeout(time.Duration(c.TimeoutMillis)*time.Millisecond))
	}
	if c.MaxStackDepth > 0 {
		opts = append(opts, WithMaxStackDepth(c.MaxStackDepth))
	}
	if c.ComplexityCap > 0 {
		opts = append(opts, WithComplexityCap(c.ComplexityCap))
	}
	if c.DepthCap > 0 {
		opts = append(opts, WithDepthCap(c.DepthCap))
	}
	if c.StrictMode != nil {
		opts = append(opts, WithStrictMode(*c.StrictMode))
	}
	if c.CacheSize > 0 {
		opts = append(opts, WithCacheSize(c.CacheSize))
	}
	if len(c.ExtraBlockedIdentifiers) > 0 {
		opts = append(opts, WithExtraBlockedIdentifiers(c.ExtraBlockedIdentifiers...))
	}
	return opts
}
