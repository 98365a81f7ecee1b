package problemset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/yomiage/internal/problemgen"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "2023.csv", "\ufeffno,row1,row2,row3,row4\n"+
		"1,500,-200,300,\n"+
		"2,1200,50,-30,10\n"+
		"3,12,,99,\n"+
		"x,1,2,3,4\n"+
		"4,7,oops,1,\n"+
		"\n"+
		"5,,,,\n")

	set, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2023.csv", set.Name)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []int{1, 2, 3}, set.Numbers())

	p, err := set.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{500, -200, 300}, p.Rows)
	assert.Equal(t, int64(600), p.Answer())

	p, err = set.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1230), p.Answer())

	// Reading stops at the first empty column.
	p, err = set.Get(3)
	require.NoError(t, err)
	assert.Equal(t, []int64{12}, p.Rows)

	_, err = set.Get(4)
	assert.ErrorIs(t, err, ErrUnknownProblem)

	// Bad number, bad row value, empty rows.
	assert.Len(t, set.Warnings, 3)

	lo, hi, ok := set.Range()
	assert.True(t, ok)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 3, hi)
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "no,row1\n")
	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	_, _, ok := set.Range()
	assert.False(t, ok)
}

func TestLoadCSV_MissingNoColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "id,row1\n1,2\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadCSV_DuplicateNumberLaterWins(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dup.csv", "no,row1,row2\n1,10,20\n1,30,40\n")
	set, err := Load(path)
	require.NoError(t, err)

	p, err := set.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 40}, p.Rows)
	require.Len(t, set.Warnings, 1)
	assert.Contains(t, set.Warnings[0].String(), "duplicate")
}

func TestGetReturnsCopy(t *testing.T) {
	path := writeFile(t, t.TempDir(), "s.csv", "no,row1,row2\n1,10,20\n")
	set, err := Load(path)
	require.NoError(t, err)

	p, _ := set.Get(1)
	p.Rows[0] = 999
	again, _ := set.Get(1)
	assert.Equal(t, int64(10), again.Rows[0])
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "drill.json", `{
		"name": "Grade 3 drills",
		"problems": [
			{"no": 1, "rows": [500, -200, 300]},
			{"no": 7, "rows": [1200, 50, -30]}
		]
	}`)

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Grade 3 drills", set.Name)
	assert.Equal(t, []int{1, 7}, set.Numbers())

	p, err := set.Get(7)
	require.NoError(t, err)
	assert.Equal(t, int64(1220), p.Answer())
}

func TestLoadJSON_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"problems": [`},
		{"missing problems", `{"name": "x"}`},
		{"empty rows", `{"problems": [{"no": 1, "rows": []}]}`},
		{"fractional row", `{"problems": [{"no": 1, "rows": [1.5]}]}`},
		{"zero number", `{"problems": [{"no": 0, "rows": [1]}]}`},
		{"extra field", `{"problems": [{"no": 1, "rows": [1], "answer": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.json", tt.doc)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", "hello")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCheckWarnsWithoutRejecting(t *testing.T) {
	path := writeFile(t, t.TempDir(), "s.csv", "no,row1,row2,row3,row4,row5\n"+
		"1,100,-50,-60,20,\n"+
		"2,900,-10,-10,-10,5\n"+
		"3,500,-200,300,,\n")
	set, err := Load(path)
	require.NoError(t, err)

	warnings := set.Check(problemgen.DefaultValidators(problemgen.DefaultConfig()))
	require.Len(t, warnings, 2)
	assert.Equal(t, 1, warnings[0].No)
	assert.Contains(t, warnings[0].Message, "non-negative")
	assert.Equal(t, 2, warnings[1].No)
	assert.Contains(t, warnings[1].Message, "negative-run")

	assert.Equal(t, 3, set.Len())
	assert.Len(t, set.Warnings, 2)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "no,row1\n1,5\n2,6\n\n3,7\n")
	writeFile(t, dir, "a.json", `{"problems": [{"no": 1, "rows": [1]}]}`)
	writeFile(t, dir, "readme.md", "ignored")
	writeFile(t, dir, "c.json", `not json`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	sums, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, sums, 3)

	assert.Equal(t, "a.json", sums[0].Name)
	assert.Equal(t, 1, sums[0].Count)
	assert.Equal(t, "b.csv", sums[1].Name)
	assert.Equal(t, 3, sums[1].Count)
	assert.Equal(t, "c.json", sums[2].Name)
	assert.Error(t, sums[2].Err)
	assert.Equal(t, 0, sums[2].Count)
}

func TestScanMissingDir(t *testing.T) {
	sums, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestWarningString(t *testing.T) {
	assert.Equal(t, "no. 3: bad", Warning{Line: 2, No: 3, Message: "bad"}.String())
	assert.Equal(t, "record 2: bad", Warning{Line: 2, Message: "bad"}.String())
	assert.Equal(t, "bad", Warning{Message: "bad"}.String())
}

func TestFromRows(t *testing.T) {
	rows := []int64{500, -200, 300}
	set := FromRows("args", rows)
	rows[0] = 1

	assert.Equal(t, "args", set.Name)
	assert.Empty(t, set.Path)
	assert.Equal(t, []int{1}, set.Numbers())

	p, err := set.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(600), p.Answer())
	assert.Empty(t, set.Warnings)
}
