package history

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
)

// WriteReport prints the most recent generation records as an aligned table.
func WriteReport(ctx context.Context, repo Repository, limit int, w io.Writer) error {
	if repo == nil {
		return eris.New("history repository is required")
	}

	records, err := repo.ListRecent(ctx, limit)
	if err != nil {
		return eris.Wrap(err, "loading generation records")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tRUN\tPAGES\tCANDIDATES\tLYRIC_LEN\tSUFFIX_LEN\tSONG")
	for _, record := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			record.CreatedAt.UTC().Format(time.RFC3339),
			record.RunID,
			record.PagesCrawled,
			record.CandidateCount,
			record.LyricLength,
			record.SuffixLength,
			record.SongURL,
		)
	}

	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "writing history report")
	}
	return nil
}
