package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/leengari/shardmerge/internal/engine"
	"github.com/leengari/shardmerge/internal/executor"
)

// Start reads statements from in until EOF or "exit" and prints results to out
func Start(in io.Reader, out io.Writer, eng *engine.Engine) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to shardmerge")
	fmt.Fprintln(out, "Type 'exit' or '\\q' to quit.")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if line == "exit" || line == "\\q" {
			break
		}

		if line == "ls" || line == "list" {
			tables, err := eng.ListTables()
			if err != nil {
				fmt.Fprintf(out, "Error listing tables: %v\n", err)
			} else {
				fmt.Fprintln(out, "Known logic tables:")
				for _, t := range tables {
					fmt.Fprintf(out, "  - %s\n", t)
				}
			}
			continue
		}

		result, err := eng.Execute(context.Background(), line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		PrintResult(out, result)
	}
}

func PrintResult(w io.Writer, res *executor.Result) {
	if res.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
		return
	}

	if len(res.Rows) > 0 || len(res.Columns) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		// Header
		fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))

		// Separator
		sep := make([]string, len(res.Columns))
		for i := range sep {
			sep[i] = "---"
		}
		fmt.Fprintln(tw, strings.Join(sep, "\t"))

		// Rows
		for _, row := range res.Rows {
			cells := make([]string, len(row))
			for i, val := range row {
				if val == nil {
					cells[i] = "NULL"
				} else {
					cells[i] = fmt.Sprintf("%v", val)
				}
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		tw.Flush()
	}

	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}
}
