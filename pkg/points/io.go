package points

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// File formats understood by [ReadFile] and [WriteFile].
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// FormatFromPath returns the file format implied by the extension of path.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", herrors.New(herrors.ErrCodeInvalidFormat,
			"unsupported points file %q (want .csv or .json)", filepath.Base(path))
	}
}

// ReadFile loads a Set from a CSV or JSON file.
func ReadFile(path string) (Set, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Set{}, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Set{}, herrors.Wrap(herrors.ErrCodeFileNotFound, err, "points file %s", path)
	}
	if err != nil {
		return Set{}, err
	}
	defer f.Close()

	if format == FormatJSON {
		return ReadJSON(f)
	}
	return ReadCSV(f)
}

// WriteFile stores s as CSV or JSON depending on the extension of path.
func WriteFile(path string, s Set) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return herrors.Wrap(herrors.ErrCodeOutput, err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	if format == FormatJSON {
		err = WriteJSON(w, s)
	} else {
		err = WriteCSV(w, s)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadCSV parses "x,y" records. A first record whose fields are not numbers
// is treated as a header. Blank lines are skipped.
func ReadCSV(r io.Reader) (Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var s Set
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return Set{}, herrors.Wrap(herrors.ErrCodeInvalidInput, err, "read points csv")
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errX != nil || errY != nil {
			if line == 1 {
				continue
			}
			return Set{}, herrors.New(herrors.ErrCodeInvalidInput,
				"points csv line %d: invalid coordinate %q,%q", line, rec[0], rec[1])
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
	}
}

// WriteCSV writes s as "x,y" records with a header line.
func WriteCSV(w io.Writer, s Set) error {
	if err := Validate(s.X, s.Y); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for i := range s.X {
		p := s.At(i)
		rec := []string{
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadJSON parses {"x": [...], "y": [...]}. Unequal lengths are accepted
// here and rejected later by [Validate].
func ReadJSON(r io.Reader) (Set, error) {
	var s Set
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Set{}, herrors.Wrap(herrors.ErrCodeInvalidInput, err, "decode points json")
	}
	return s, nil
}

// WriteJSON writes s as {"x": [...], "y": [...]}.
func WriteJSON(w io.Writer, s Set) error {
	if s.X == nil {
		s.X = []float64{}
	}
	if s.Y == nil {
		s.Y = []float64{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode points json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
