// Package problemset loads curated listening problems from CSV and JSON
// files. A set maps problem numbers to row sequences.
package problemset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/abhisek/yomiage/internal/problemgen"
)

// ErrUnknownProblem is returned by Get for a number the set does not hold.
var ErrUnknownProblem = errors.New("unknown problem number")

// ErrUnsupportedFormat is returned for files that are neither CSV nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported problem set format")

// Warning flags a record that loaded but looks suspicious, or one that
// was skipped.
type Warning struct {
	Line    int // 1-based record number in the file, 0 if unknown
	No      int // problem number, 0 if unreadable
	Message string
}

func (w Warning) String() string {
	switch {
	case w.No > 0:
		return fmt.Sprintf("no. %d: %s", w.No, w.Message)
	case w.Line > 0:
		return fmt.Sprintf("record %d: %s", w.Line, w.Message)
	default:
		return w.Message
	}
}

// Set is a loaded problem set.
type Set struct {
	Name     string
	Path     string
	Warnings []Warning

	problems map[int][]int64
}

func newSet(path string) *Set {
	return &Set{
		Name:     filepath.Base(path),
		Path:     path,
		problems: make(map[int][]int64),
	}
}

// FromRows wraps a single row sequence as problem 1 of an in-memory set.
func FromRows(name string, rows []int64) *Set {
	s := newSet(name)
	s.Path = ""
	s.add(0, 1, slices.Clone(rows))
	return s
}

// add stores rows under no. A repeated number replaces the earlier one.
func (s *Set) add(line, no int, rows []int64) {
	if _, dup := s.problems[no]; dup {
		s.warn(Warning{Line: line, No: no, Message: "duplicate number, later record wins"})
	}
	s.problems[no] = rows
}

func (s *Set) warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Len returns the number of problems.
func (s *Set) Len() int {
	return len(s.problems)
}

// Numbers returns the problem numbers in ascending order.
func (s *Set) Numbers() []int {
	nums := make([]int, 0, len(s.problems))
	for no := range s.problems {
		nums = append(nums, no)
	}
	sort.Ints(nums)
	return nums
}

// Range returns the lowest and highest problem numbers. ok is false for
// an empty set.
func (s *Set) Range() (lo, hi int, ok bool) {
	nums := s.Numbers()
	if len(nums) == 0 {
		return 0, 0, false
	}
	return nums[0], nums[len(nums)-1], true
}

// Get returns problem no as a Problem.
func (s *Set) Get(no int) (problemgen.Problem, error) {
	rows, ok := s.problems[no]
	if !ok {
		return problemgen.Problem{}, fmt.Errorf("%w: %d in %s", ErrUnknownProblem, no, s.Name)
	}
	return problemgen.Problem{Rows: slices.Clone(rows)}, nil
}

// Check runs validators over every problem and appends a warning for each
// failure. Curated problems are never rejected.
func (s *Set) Check(validators []problemgen.Validator) []Warning {
	var out []Warning
	for _, no := range s.Numbers() {
		if err := problemgen.Validate(problemgen.Problem{Rows: s.problems[no]}, validators); err != nil {
			out = append(out, Warning{No: no, Message: err.Error()})
		}
	}
	s.Warnings = append(s.Warnings, out...)
	return out
}

// Load reads a problem set, choosing the format by file extension.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open problem set: %w", err)
	}
	defer f.Close()

	set := newSet(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = readCSV(f, set)
	case ".json":
		err = readJSON(f, set)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", set.Name, err)
	}
	return set, nil
}

// Supported reports whether Load can read the file by its extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".json":
		return true
	}
	return false
}
