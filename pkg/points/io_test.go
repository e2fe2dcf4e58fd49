package points

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{"with header", "x,y\n1,2\n3,4\n", 2, false},
		{"without header", "1,2\n3.5,4\n", 2, false},
		{"blank lines", "1,2\n\n3,4\n", 2, false},
		{"spaces", "1, 2\n 3 ,4\n", 2, false},
		{"empty", "", 0, false},
		{"bad value after header", "x,y\n1,2\na,b\n", 0, true},
		{"wrong field count", "1,2,3\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadCSV(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCSV error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && s.Len() != tt.wantLen {
				t.Errorf("len = %d, want %d", s.Len(), tt.wantLen)
			}
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := Set{X: []float64{0, 1279, 12.5}, Y: []float64{959, 0, 3}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, in); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "x,y\n") {
		t.Errorf("missing header: %q", buf.String())
	}
	out, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	for i := range in.X {
		if in.At(i) != out.At(i) {
			t.Errorf("point %d = %v, want %v", i, out.At(i), in.At(i))
		}
	}
}

func TestWriteCSVRejectsMismatch(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, Set{X: []float64{1}, Y: nil})
	if !herrors.Is(err, herrors.ErrCodeLengthMismatch) {
		t.Errorf("WriteCSV error = %v, want length mismatch", err)
	}
}

func TestReadJSONKeepsMismatch(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(`{"x":[1,2,3,4,5],"y":[1,2,3,4]}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if err := Validate(s.X, s.Y); !herrors.Is(err, herrors.ErrCodeLengthMismatch) {
		t.Errorf("Validate = %v, want length mismatch", err)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"x":`))
	if !herrors.Is(err, herrors.ErrCodeInvalidInput) {
		t.Errorf("ReadJSON error = %v, want invalid input", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := Generate(20, DefaultDomain, NewRand(3))

	for _, name := range []string{"pts.csv", "pts.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, in); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			out, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if out.Len() != in.Len() {
				t.Fatalf("len = %d, want %d", out.Len(), in.Len())
			}
			for i := range in.X {
				if in.At(i) != out.At(i) {
					t.Errorf("point %d = %v, want %v", i, out.At(i), in.At(i))
				}
			}
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadFile(filepath.Join(dir, "missing.csv")); !herrors.Is(err, herrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want file not found", err)
	}

	bad := filepath.Join(dir, "points.xml")
	if err := os.WriteFile(bad, []byte("<x/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(bad); !herrors.Is(err, herrors.ErrCodeInvalidFormat) {
		t.Errorf("xml file error = %v, want invalid format", err)
	}
}
