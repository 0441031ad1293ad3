package main

import (
	"flag"
	"io"
	"testing"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Int("width", 64, "")
	fs.Int64("size", 0, "")
	fs.Int64("first", 0, "")
	fs.Int64("last", 0, "")
	fs.Uint64("seed", 0, "")
	fs.String("key", "", "")
	fs.Int("rounds", 0, "")
	fs.Uint64("multiplier", 0, "")
	fs.String("listen", "127.0.0.1:1080", "")
	fs.Uint("subnet-size", 0, "")
	return fs
}

func TestApplyConfig(t *testing.T) {
	t.Parallel()

	config := []byte(`
[permutation]
width = 32
size = 1000
seed = 77
rounds = 5

[proxy]
listen = 127.0.0.1:9050
subnet-size = 64
`)
	fs := newTestFlagSet()
	if err := fs.Parse([]string{"-seed", "5", "encode"}); err != nil {
		t.Fatal(err)
	}
	if err := applyConfig(fs, config); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"width":       "32",
		"size":        "1000",
		"seed":        "5",
		"rounds":      "5",
		"listen":      "127.0.0.1:9050",
		"subnet-size": "64",
		"first":       "0",
	}
	for name, value := range want {
		if got := fs.Lookup(name).Value.String(); got != value {
			t.Errorf("-%s = %q, want %q", name, got, value)
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["size"] || set["first"] {
		t.Errorf("set flags = %v, want size set and first unset", set)
	}
}

func TestApplyConfigErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		config string
	}{
		{"unknown section", "[network]\nsize = 4\n"},
		{"unknown key", "[permutation]\ncolor = blue\n"},
		{"key in wrong section", "[proxy]\nseed = 1\n"},
		{"bad value", "[permutation]\nsize = lots\n"},
		{"top level key", "size = 4\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fs := newTestFlagSet()
			if err := applyConfig(fs, []byte(tc.config)); err == nil {
				t.Errorf("applyConfig(%q) succeeded", tc.config)
			}
		})
	}
}

func TestApplyConfigMissingFile(t *testing.T) {
	t.Parallel()

	if err := applyConfig(newTestFlagSet(), "/nonexistent/shuffle.ini"); err == nil {
		t.Error("applyConfig of a missing file succeeded")
	}
}
