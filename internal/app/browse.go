package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
	"github.com/samvad-hq/samvad-headlines/internal/reader"
	"github.com/samvad-hq/samvad-headlines/internal/render"
)

const helpText = `Commands:
  search <text>      search all articles (empty text clears the search)
  category <name>    filter headlines: none, business, entertainment, health, science, sports, technology
  next | prev        page through results
  reload             fetch the current page again
  open <n>           print the full link of article n
  help               show this help
  quit               exit`

// Browse runs the interactive reader loop, reading commands from in and drawing to out,
// until the user quits, input ends or ctx is cancelled.
func (r *Reader) Browse(ctx context.Context, in io.Reader, out io.Writer) error {
	if r == nil {
		return fmt.Errorf("reader is not initialized")
	}

	renderer := render.NewRenderer(out, r.filter)
	sess := r.newSession(func(snap reader.Snapshot) {
		if snap.State == reader.StateLoading {
			fmt.Fprintln(out, render.DimStyle.Render("Loading..."))
			return
		}
		if err := renderer.Page(snap); err != nil {
			r.log.ErrorObj("render page failed", "error", err)
		}
	})

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	sess.Start(ctx)
	for {
		fmt.Fprint(out, render.ControlStyle.Render("> "))
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			quit, err := r.dispatch(ctx, sess, renderer, line, out)
			if err != nil {
				fmt.Fprintln(out, render.ErrorStyle.Render(err.Error()))
			}
			if quit {
				return nil
			}
		}
	}
}

// dispatch executes one command line. It reports whether the loop should stop.
func (r *Reader) dispatch(ctx context.Context, sess *reader.Session, renderer *render.Renderer, line string, out io.Writer) (bool, error) {
	cmd, arg := splitCommand(line)
	switch cmd {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		fmt.Fprintln(out, helpText)
	case "s", "search":
		sess.Search(ctx, arg)
	case "c", "category":
		c, err := domain.ParseCategory(arg)
		if err != nil {
			return false, err
		}
		sess.SelectCategory(ctx, c)
	case "n", "next":
		if _, err := sess.Next(ctx); errors.Is(err, reader.ErrNotAvailable) {
			return false, errors.New("already on the last page")
		}
	case "p", "prev", "previous":
		if _, err := sess.Prev(ctx); errors.Is(err, reader.ErrNotAvailable) {
			return false, errors.New("already on the first page")
		}
	case "r", "reload":
		sess.Reload(ctx)
	case "o", "open":
		u, err := articleLink(renderer.Visible(sess.Snapshot()), arg)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, render.LinkStyle.Render(u))
	default:
		return false, fmt.Errorf("unknown command %q (type help)", cmd)
	}
	return false, nil
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func articleLink(visible []domain.Article, arg string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return "", fmt.Errorf("open needs an article number")
	}
	if n < 1 || n > len(visible) {
		return "", fmt.Errorf("no article %d on this page", n)
	}
	return visible[n-1].URL, nil
}
