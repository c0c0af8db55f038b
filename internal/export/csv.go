package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matheuskafuri/hotwatch/internal/trend"
)

// DefaultFilename is the name offered for downloads when none is given.
const DefaultFilename = "weibo_hot_search.csv"

// BOM lets spreadsheet tools detect UTF-8 so non-ASCII titles render.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"title", "score", "heat", "link"}

// WriteCSV writes a BOM-prefixed UTF-8 CSV of the dataset in rank order.
func WriteCSV(w io.Writer, ds trend.Dataset) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range ds.Records {
		row := []string{r.Title, r.DisplayScore, strconv.FormatInt(r.NumericScore, 10), r.Link}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", r.Rank, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
