package sqlnav

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// RenderGrid writes columns and rows as a fixed-width grid:
//
//	-----------
//	|id  |name|
//	===========
//	|1   |ann |
//	-----------
//
// Every cell is padded to one shared width, the widest column name or cell
// in terminal display columns. East Asian wide and fullwidth runes count as
// two.
func RenderGrid(w io.Writer, columns []string, rows [][]any) error {
	cells := make([][]string, len(rows))
	cellWidth := 0
	for _, c := range columns {
		cellWidth = max(cellWidth, displayWidth(c))
	}
	for i, row := range rows {
		cells[i] = make([]string, len(columns))
		for j := range columns {
			var v any
			if j < len(row) {
				v = row[j]
			}
			cells[i][j] = formatCell(v)
			cellWidth = max(cellWidth, displayWidth(cells[i][j]))
		}
	}

	ruleWidth := 1 + len(columns)*(cellWidth+1)
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	writeGridLine(bw, columns, cellWidth)
	bw.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	for _, line := range cells {
		writeGridLine(bw, line, cellWidth)
	}
	bw.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	return bw.Flush()
}

func writeGridLine(bw *bufio.Writer, cells []string, cellWidth int) {
	bw.WriteByte('|')
	for _, c := range cells {
		bw.WriteString(c)
		bw.WriteString(strings.Repeat(" ", cellWidth-displayWidth(c)))
		bw.WriteByte('|')
	}
	bw.WriteByte('\n')
}

// formatCell renders one value the way the grid and column listings show it.
func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

// displayWidth returns the number of terminal columns s occupies.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
