package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abint-dev/abint/internal/interp"
)

const defaultConfigPath = ".abint.yaml"

// fileConfig is the on-disk shape of the engine configuration.
type fileConfig struct {
	ObjectModel          string   `yaml:"object_model"`
	DegradeUnknownEffect bool     `yaml:"degrade_unknown_effect"`
	MaxDeepCopyDepth     int      `yaml:"max_deep_copy_depth"`
	Heuristics           []string `yaml:"heuristics"`
}

func defaultFileConfig() fileConfig {
	def := interp.DefaultConfig()
	names := make([]string, len(def.Heuristics))
	for i, h := range def.Heuristics {
		names[i] = h.Name()
	}
	return fileConfig{
		ObjectModel:          def.ObjectModel,
		DegradeUnknownEffect: def.DegradeUnknownEffect,
		MaxDeepCopyDepth:     def.MaxDeepCopyDepth,
		Heuristics:           names,
	}
}

// loadConfig reads the configuration file, falling back to defaults
// when no path is given and the default file does not exist.
func loadConfig(path string) (interp.Config, error) {
	if path == "" {
		path = defaultConfigPath
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return interp.DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return interp.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	fc := defaultFileConfig()
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return interp.Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg := interp.Config{
		ObjectModel:          fc.ObjectModel,
		DegradeUnknownEffect: fc.DegradeUnknownEffect,
		MaxDeepCopyDepth:     fc.MaxDeepCopyDepth,
	}
	for _, name := range fc.Heuristics {
		h, ok := interp.HeuristicByName(name)
		if !ok {
			return interp.Config{}, fmt.Errorf("unknown heuristic %q in %s", name, path)
		}
		cfg.Heuristics = append(cfg.Heuristics, h)
	}
	return cfg, nil
}
