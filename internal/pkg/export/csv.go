package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

const CSVContentType = "text/csv"

// CSV renders t with a header row. A table without rows renders as an empty body, since the
// header is derived from the first record.
func CSV(t Table) ([]byte, error) {
	if t.IsEmpty() {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
