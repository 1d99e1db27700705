package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/ukaji3/i18nxlsx-go/pkg/i18nxlsx/models"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ConflictLog is the ordered conflict record of one merge run.
type ConflictLog struct {
	StartedAt time.Time
	Records   []models.Conflict
}

// Header returns the run header line.
func (l ConflictLog) Header() string {
	return "[merge] " + l.StartedAt.UTC().Format(TimestampLayout)
}

// WriteTo writes the header line followed by one line per conflict.
func (l ConflictLog) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	written, err := fmt.Fprintln(bw, l.Header())
	n += int64(written)
	if err != nil {
		return n, err
	}
	for _, c := range l.Records {
		written, err = fmt.Fprintln(bw, c.String())
		n += int64(written)
		if err != nil {
			return n, err
		}
	}

	return n, bw.Flush()
}
