// ABOUTME: Loads datasets from a directory of YAML files (key = basename) and XLSX workbooks (key = sheet).
// ABOUTME: A broken file is logged and skipped so one bad dataset never blocks the others.
package series

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// LoadDir reads every *.yml, *.yaml and *.xlsx file in dir into a new Repository.
// Files that fail to parse are logged and skipped.
func LoadDir(dir string) (*Repository, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	repo := NewRepository()
	for _, name := range names {
		path := filepath.Join(dir, name)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yml", ".yaml":
			d, err := LoadYAMLFile(path)
			if err != nil {
				log.Printf("series: skip file=%s err=%v", path, err)
				continue
			}
			repo.Put(d)
		case ".xlsx":
			datasets, err := LoadXLSXFile(path)
			if err != nil {
				log.Printf("series: skip file=%s err=%v", path, err)
				continue
			}
			for _, d := range datasets {
				repo.Put(d)
			}
		}
	}
	return repo, nil
}

// LoadYAMLFile decodes one dataset; its key is the file name without extension.
func LoadYAMLFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseYAML(key, raw)
}

// ParseYAML decodes a dataset document and assigns it key.
func ParseYAML(key string, raw []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", key, err)
	}
	if d.Data == nil {
		d.Data = map[int]float64{}
	}
	d.Key = key
	return &d, nil
}

// LoadXLSXFile reads one dataset per worksheet. Each row is either
// "year, value" or a metadata row whose first cell is unit, precision,
// title or question. Rows that match neither (headers, notes) are ignored.
func LoadXLSXFile(path string) ([]*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var out []*Dataset
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		d, err := datasetFromRows(sheet, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func datasetFromRows(key string, rows [][]string) (*Dataset, error) {
	d := &Dataset{Key: key, Data: map[int]float64{}}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		head := strings.TrimSpace(row[0])
		cell := strings.TrimSpace(row[1])

		switch strings.ToLower(head) {
		case "unit":
			d.Unit = cell
			continue
		case "title":
			d.Title = cell
			continue
		case "question":
			d.Question = cell
			continue
		case "precision":
			p, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: precision %q: %w", key, i+1, cell, err)
			}
			d.Precision = &p
			continue
		}

		year, err := strconv.Atoi(head)
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.Replace(cell, ",", ".", 1), 64)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: value %q: %w", key, i+1, cell, err)
		}
		d.Data[year] = value
	}
	return d, nil
}
