package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/yomiage/internal/problemgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random problems",
	Long: `Generate listening problems without speaking them.

The csv and json formats are problem set files that "yomiage sets" and the
practice screen can read back.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addOptionFlags(generateCmd)
	generateCmd.Flags().IntP("count", "n", 10, "Number of problems")
	generateCmd.Flags().StringP("format", "f", "text", "Output format: text, csv or json")
	generateCmd.Flags().String("name", "", "Set name for json output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	format, _ := cmd.Flags().GetString("format")
	name, _ := cmd.Flags().GetString("name")

	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	sess, _, err := sessionFromFlags(cmd, nil)
	if err != nil {
		return err
	}

	problems := make([]problemgen.Problem, 0, count)
	for range count {
		p, err := sess.Next()
		if err != nil {
			return err
		}
		problems = append(problems, p)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "text":
		return writeText(out, problems)
	case "csv":
		return writeCSV(out, problems)
	case "json":
		return writeJSON(out, name, problems)
	default:
		return fmt.Errorf("unknown format %q: must be text, csv or json", format)
	}
}

func writeText(w io.Writer, problems []problemgen.Problem) error {
	for i, p := range problems {
		rows := make([]string, len(p.Rows))
		for j, r := range p.Rows {
			rows[j] = strconv.FormatInt(r, 10)
		}
		if _, err := fmt.Fprintf(w, "%3d: %s = %d\n", i+1, strings.Join(rows, " "), p.Answer()); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, problems []problemgen.Problem) error {
	width := 0
	for _, p := range problems {
		width = max(width, p.Len())
	}

	cw := csv.NewWriter(w)
	header := []string{"no"}
	for i := 1; i <= width; i++ {
		header = append(header, "row"+strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, p := range problems {
		rec := make([]string, width+1)
		rec[0] = strconv.Itoa(i + 1)
		for j, r := range p.Rows {
			rec[j+1] = strconv.FormatInt(r, 10)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonProblem struct {
	No   int     `json:"no"`
	Rows []int64 `json:"rows"`
}

type jsonSet struct {
	Name     string        `json:"name,omitempty"`
	Problems []jsonProblem `json:"problems"`
}

func writeJSON(w io.Writer, name string, problems []problemgen.Problem) error {
	doc := jsonSet{Name: name, Problems: make([]jsonProblem, len(problems))}
	for i, p := range problems {
		doc.Problems[i] = jsonProblem{No: i + 1, Rows: p.Rows}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
