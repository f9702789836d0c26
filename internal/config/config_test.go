package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "." || cfg.CSVName != "navisworks_views_comments.csv" || cfg.StreamTrace {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "navisexport.yaml")
	content := "output_dir: exports\ncsv_name: site_review.csv\nstream_trace: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "exports" || cfg.CSVName != "site_review.csv" || !cfg.StreamTrace {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navisexport.yaml")
	if err := os.WriteFile(path, []byte("output_dir: exports\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "exports" || cfg.CSVName != "navisworks_views_comments.csv" {
		t.Fatalf("expected unset keys to keep defaults: %+v", cfg)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navisexport.yaml")
	if err := os.WriteFile(path, []byte("csv_name: from_yaml.csv\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NAVISEXPORT_CSV_NAME", "from_env.csv")
	t.Setenv("NAVISEXPORT_STREAM_TRACE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CSVName != "from_env.csv" || !cfg.StreamTrace {
		t.Fatalf("expected env to win over yaml: %+v", cfg)
	}
}

func TestLoadRejectsBadStreamTrace(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NAVISEXPORT_STREAM_TRACE", "maybe")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid bool")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"empty csv name", Config{OutputDir: "."}, "csv name must not be empty"},
		{"path in csv name", Config{OutputDir: ".", CSVName: filepath.Join("a", "b.csv")}, "bare file name"},
		{"wrong extension", Config{OutputDir: ".", CSVName: "table.txt"}, "end in .csv"},
		{"empty output dir", Config{CSVName: "t.csv"}, "output dir"},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}

	if err := (Config{OutputDir: ".", CSVName: "Report.CSV"}).Validate(); err != nil {
		t.Fatalf("expected case-insensitive extension to pass, got %v", err)
	}
}
