package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/samvad-hq/samvad-headlines/internal/reader"
)

// Table writes the visible articles of snap as a plain table, for non-interactive use.
func (r *Renderer) Table(snap reader.Snapshot) error {
	if snap.State == reader.StateFailed {
		_, err := io.WriteString(r.out, FailureMessage+"\n")
		return err
	}

	table := tablewriter.NewTable(r.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(snap.Page.Articles))
	for i, a := range r.Visible(snap) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.Title,
			a.Source,
			FormatPublished(a.PublishedAt, r.loc),
			ImageText(snap.Images.For(a)),
			a.URL,
		})
	}

	table.Header([]string{"#", "Title", "Source", "Published", "Image", "Link"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := io.WriteString(r.out, pageLabel(snap)+"\n")
	return err
}
