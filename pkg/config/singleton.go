package config

import "sync"

// The process-wide configuration, installed once at startup by Initialize
// and read by the cobra commands through GetConfig.
var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Initialize loads the configuration from path, applies EUROPA_* environment
// overrides, validates it, and installs it as the process-wide instance.
// The first successful call wins; later calls are no-ops. A failed call
// leaves the global unset, so startup code may retry with a corrected path.
func Initialize(path string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalConfig != nil {
		return nil
	}

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return err
	}
	globalConfig = cfg
	return nil
}

// GetConfig returns the process-wide configuration, or nil before a
// successful Initialize. Code below the command layer takes a *Config
// parameter instead of reaching for this.
func GetConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetConfig replaces the process-wide configuration. Tests use it to
// install fixtures without a file on disk.
func SetConfig(cfg *Config) {
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}
