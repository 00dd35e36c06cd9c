package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/reader"
)

const (
	defaultWidth = 80
	minWidth     = 40
)

// Renderer draws session snapshots to a terminal.
type Renderer struct {
	out    io.Writer
	filter *Filter
	width  int
	loc    *time.Location
}

// NewRenderer builds a renderer. Width is taken from the terminal when out is one.
func NewRenderer(out io.Writer, filter *Filter) *Renderer {
	return &Renderer{
		out:    out,
		filter: filter,
		width:  terminalWidth(out),
		loc:    time.Local,
	}
}

// WithWidth overrides the detected width.
func (r *Renderer) WithWidth(w int) *Renderer {
	if w < minWidth {
		w = minWidth
	}
	r.width = w
	return r
}

// WithLocation sets the zone publication times are shown in.
func (r *Renderer) WithLocation(loc *time.Location) *Renderer {
	r.loc = loc
	return r
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w < minWidth {
		return defaultWidth
	}
	return w
}

// Visible returns the articles of snap that pass the render filter.
func (r *Renderer) Visible(snap reader.Snapshot) []domain.Article {
	return r.filter.Apply(snap.Page.Articles)
}

// Page writes the full page view: header, status, article list and controls.
func (r *Renderer) Page(snap reader.Snapshot) error {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Latest News"))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(filterLine(snap.Query)))
	b.WriteString("\n\n")

	switch snap.State {
	case reader.StateIdle:
		b.WriteString(DimStyle.Render("Nothing loaded yet."))
		b.WriteString("\n")
	case reader.StateLoading:
		b.WriteString(DimStyle.Render("Loading..."))
		b.WriteString("\n")
	case reader.StateFailed:
		b.WriteString(ErrorStyle.Render(ErrorText(snap.Err)))
		b.WriteString("\n")
	case reader.StateReady:
		r.writeArticles(&b, snap)
	}

	b.WriteString("\n")
	b.WriteString(r.controls(snap))
	b.WriteString("\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) writeArticles(b *strings.Builder, snap reader.Snapshot) {
	visible := r.Visible(snap)
	if len(visible) == 0 {
		b.WriteString(DimStyle.Render("No articles found."))
		b.WriteString("\n")
		return
	}

	body := TextStyle.Width(r.width - 4)
	for i, a := range visible {
		fmt.Fprintf(b, "%s %s\n", DimStyle.Render(fmt.Sprintf("%2d.", i+1)), TitleStyle.Render(a.Title))
		if a.Description != "" {
			b.WriteString(indent(body.Render(a.Description)))
			b.WriteString("\n")
		}

		meta := make([]string, 0, 2)
		if ts := FormatPublished(a.PublishedAt, r.loc); ts != "" {
			meta = append(meta, DateStyle.Render(ts))
		}
		if a.Source != "" {
			meta = append(meta, SourceStyle.Render(a.Source))
		}
		if len(meta) > 0 {
			b.WriteString(indent(strings.Join(meta, DimStyle.Render(" · "))))
			b.WriteString("\n")
		}

		b.WriteString(indent(DimStyle.Render("Image: ") + ImageText(snap.Images.For(a))))
		b.WriteString("\n")
		b.WriteString(indent(DimStyle.Render("Read more: ") + LinkStyle.Render(a.URL)))
		b.WriteString("\n\n")
	}
}

func (r *Renderer) controls(snap reader.Snapshot) string {
	prev := DisabledStyle.Render("< Previous")
	if snap.HasPrev() {
		prev = ControlStyle.Render("< Previous")
	}
	next := DisabledStyle.Render("Next >")
	if snap.HasNext() {
		next = ControlStyle.Render("Next >")
	}
	return fmt.Sprintf("%s  %s  %s", prev, pageLabel(snap), next)
}

func pageLabel(snap reader.Snapshot) string {
	if snap.Page.TotalPages <= 0 {
		return fmt.Sprintf("Page %d", snap.Query.Page)
	}
	return fmt.Sprintf("Page %d of %d", snap.Query.Page, snap.Page.TotalPages)
}

func filterLine(q domain.QueryState) string {
	parts := []string{"Category: " + q.Category.String()}
	if q.Query != "" {
		parts = append([]string{fmt.Sprintf("Search: %q", q.Query)}, parts...)
	}
	return strings.Join(parts, " · ")
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
