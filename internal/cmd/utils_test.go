package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hargabyte/liftoff/internal/launch"
)

func TestSplitCommaList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"overview", []string{"overview"}},
		{"overview,insights", []string{"overview", "insights"}},
		{" overview , insights ", []string{"overview", "insights"}},
		{"overview,,insights,", []string{"overview", "insights"}},
	}

	for _, tt := range tests {
		got := splitCommaList(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCommaList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDecodeDataFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	data := `id: proj-1
name: Phoenix
industry: fintech
stage: mvp
facts:
  validation:
    market_size: "$2B TAM"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var project launch.ProjectData
	if err := decodeDataFile(path, &project); err != nil {
		t.Fatalf("decodeDataFile() error = %v", err)
	}
	if project.ID != "proj-1" || project.Name != "Phoenix" {
		t.Errorf("decoded project = %+v", project)
	}
	if project.Facts.Validation == nil || project.Facts.Validation.MarketSize != "$2B TAM" {
		t.Errorf("validation facts not decoded: %+v", project.Facts.Validation)
	}
}

func TestDecodeDataFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	data := `{"id":"proj-2","name":"Atlas","stage":"idea"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var project launch.ProjectData
	if err := decodeDataFile(path, &project); err != nil {
		t.Fatalf("decodeDataFile() error = %v", err)
	}
	if project.ID != "proj-2" || project.Name != "Atlas" || project.Stage != "idea" {
		t.Errorf("decoded project = %+v", project)
	}
}

func TestDecodeDataFileMissing(t *testing.T) {
	var project launch.ProjectData
	if err := decodeDataFile("/nonexistent/project.yaml", &project); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{1536, "1.5 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}

	for _, tt := range tests {
		if got := formatByteSize(tt.n); got != tt.want {
			t.Errorf("formatByteSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
