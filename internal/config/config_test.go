package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/bacs-std18/internal/std18"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.InputDir != "./input" || cfg.OutputDir != "./output" {
		t.Errorf("dirs = %q / %q", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("MaxConcurrency = %d, want 4", cfg.MaxConcurrency)
	}
	if cfg.OutputNameFormat != "{name}_{uuid}.xlsx" {
		t.Errorf("OutputNameFormat = %q", cfg.OutputNameFormat)
	}
	if got := cfg.RowTags(); len(got) != len(std18.Rows()) {
		t.Errorf("RowTags = %v, want every row", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestParse(t *testing.T) {
	doc := `
input_dir: /data/in
output_dir: /data/out
rows: [instr, CONTRA, UTL1]
log_format: json
max_concurrency: 2
archive_inputs: true
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.InputDir != "/data/in" || cfg.OutputDir != "/data/out" {
		t.Errorf("dirs = %q / %q", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.InputArchiveDir != "./input_archive" {
		t.Errorf("InputArchiveDir default not applied: %q", cfg.InputArchiveDir)
	}
	want := []std18.Row{std18.INSTR, std18.CONTRA, std18.UTL1}
	got := cfg.RowTags()
	if len(got) != len(want) {
		t.Fatalf("RowTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RowTags[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if !cfg.ArchiveInputs || cfg.MaxConcurrency != 2 || cfg.LogFormat != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseValidationAggregatesErrors(t *testing.T) {
	doc := `
rows: [HDR9]
log_level: loud
log_format: xml
max_concurrency: -1
output_name_format: "{uuid}.csv"
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected validation error")
	}

	for _, want := range []string{"HDR9", "log_level", "log_format", "max_concurrency", "output_name_format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s:\n%v", want, err)
		}
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("rows: [unterminated")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.InputDir != "./input" {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}

	path := filepath.Join(dir, "std18.yaml")
	if err := os.WriteFile(path, []byte("input_dir: ./incoming\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.InputDir != "./incoming" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.OutputDir = filepath.Join(root, "out")
	cfg.InputArchiveDir = filepath.Join(root, "archive")
	cfg.ArchiveInputs = true

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}
	for _, dir := range []string{cfg.OutputDir, cfg.InputArchiveDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("%s was not created", dir)
		}
	}
}
