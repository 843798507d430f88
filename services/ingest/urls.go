package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// ReadURLList reads the first column of a headerless csv, skipping blank
// lines, in file order.
func ReadURLList(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var urls []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		url := strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff"))
		if url == "" {
			continue
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func ReadURLListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadURLList(f)
}
