package main

import (
	"flag"
	"fmt"
	"slices"

	"gopkg.in/ini.v1"
)

// configKeys lists the flags each config file section may set.
var configKeys = map[string][]string{
	"permutation": {"width", "size", "first", "last", "seed", "key", "rounds", "multiplier"},
	"proxy":       {"listen", "subnet-size"},
}

// applyConfig sets flags in fs from the INI source, which may be a file name
// or raw bytes. Flags already given on the command line keep their values.
func applyConfig(fs *flag.FlagSet, source any) error {
	cfg, err := ini.Load(source)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	for _, section := range cfg.Sections() {
		allowed, known := configKeys[section.Name()]
		if !known {
			if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
				continue
			}
			return fmt.Errorf("config: unknown section [%s]", section.Name())
		}
		for _, k := range section.Keys() {
			if !slices.Contains(allowed, k.Name()) {
				return fmt.Errorf("config: unknown key %q in [%s]", k.Name(), section.Name())
			}
			if explicit[k.Name()] {
				v("config: %s overridden on the command line", k.Name())
				continue
			}
			if err := fs.Set(k.Name(), k.String()); err != nil {
				return fmt.Errorf("config: [%s] %s: %w", section.Name(), k.Name(), err)
			}
		}
	}
	return nil
}
