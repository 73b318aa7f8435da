package document

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Serie gives the values of one series, either inline or read from a csv
// file. When read from a file, the first line is a header and the labels
// of the rows are kept to caption the columns.
type Serie struct {
	Name   string    `toml:"name"`
	Color  string    `toml:"color"`
	Values []float64 `toml:"values"`
	File   string    `toml:"file"`
	XCol   int       `toml:"xcol"`
	YCol   *int      `toml:"ycol"`
	Delim  string    `toml:"delimiter"`

	Labels []string `toml:"-"`
}

func (s *Serie) Load(dir string) ([]float64, error) {
	if s.File == "" {
		return s.Values, nil
	}
	file := s.File
	if !filepath.IsAbs(file) && dir != "" {
		file = filepath.Join(dir, file)
	}
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ycol := 1
	if s.YCol != nil {
		ycol = *s.YCol
	}
	labels, values, err := readPoints(r, s.XCol, ycol, s.Delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.File, err)
	}
	s.Labels = labels
	return values, nil
}

var errColumn = errors.New("invalid x/y index columns given")

func readPoints(r io.Reader, x, y int, delim string) ([]string, []float64, error) {
	var (
		rs     = csv.NewReader(r)
		labels []string
		values []float64
	)
	if delim != "" {
		rs.Comma = []rune(delim)[0]
	}
	if _, err := rs.Read(); err != nil {
		return nil, nil, err
	}
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, err
		}
		if x >= len(row) || x < 0 || y >= len(row) || y < 0 {
			return nil, nil, errColumn
		}
		v, err := strconv.ParseFloat(row[y], 64)
		if err != nil {
			return nil, nil, err
		}
		labels = append(labels, row[x])
		values = append(values, v)
	}
	return labels, values, nil
}
