package problemset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/yomiage/internal/problemgen"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripBOM drops a leading UTF-8 byte order mark, as written by
// spreadsheet exports.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// readCSV reads records shaped "no,row1,row2,...". Rows are read in
// order until the first empty or missing rowN column. Unreadable records
// are skipped with a warning.
func readCSV(r io.Reader, set *Set) error {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	noCol, ok := cols["no"]
	if !ok {
		return fmt.Errorf("header has no %q column", "no")
	}

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				set.warn(Warning{Line: line, Message: pe.Error()})
				continue
			}
			return fmt.Errorf("read record %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}

		no, err := strconv.Atoi(field(rec, noCol))
		if err != nil {
			set.warn(Warning{Line: line, Message: fmt.Sprintf("bad number %q", field(rec, noCol))})
			continue
		}

		rows, err := readRows(rec, cols)
		if err != nil {
			set.warn(Warning{Line: line, No: no, Message: err.Error()})
			continue
		}
		if len(rows) == 0 {
			set.warn(Warning{Line: line, No: no, Message: "no rows"})
			continue
		}
		set.add(line, no, rows)
	}
}

func readRows(rec []string, cols map[string]int) ([]int64, error) {
	var rows []int64
	for i := 1; i <= problemgen.MaxRows; i++ {
		idx, ok := cols["row"+strconv.Itoa(i)]
		if !ok {
			break
		}
		v := field(rec, idx)
		if v == "" {
			break
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row%d: bad value %q", i, v)
		}
		rows = append(rows, n)
	}
	return rows, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// countCSV counts non-blank records after the header without parsing them.
func countCSV(r io.Reader) (int, error) {
	cr := newCSVReader(r)
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("read header: %w", err)
	}

	n := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("count records: %w", err)
		}
		if !blank(rec) {
			n++
		}
	}
}
