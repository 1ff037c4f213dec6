// Package feed supplies the demo's content in pages, the way a paginated API
// would: a refresh asks for the first page, load-more asks for the next one.
package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/five82/pullrefresh/internal/clock"
)

// Page is one slice of a feed. Next is the offset of the following page.
type Page struct {
	Lines []string
	Next  int
	More  bool
}

// Source returns pages of lines starting at offset.
type Source interface {
	Page(ctx context.Context, offset, limit int) (Page, error)
}

// File pages through the lines of a text file. The file is re-read on every
// call so edits show up on the next refresh.
type File struct {
	Path string
}

// Page reads at most limit lines starting at line offset. A missing file is
// an empty feed.
func (f File) Page(ctx context.Context, offset, limit int) (Page, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return Page{Next: offset}, nil
	}
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Page{Next: offset}, nil
		}
		return Page{}, fmt.Errorf("open feed: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	page := Page{Lines: make([]string, 0, limit)}
	index := 0
	for scanner.Scan() {
		if index%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Page{}, err
			}
		}
		switch {
		case index < offset:
		case len(page.Lines) < limit:
			page.Lines = append(page.Lines, strings.TrimRight(scanner.Text(), "\r"))
		default:
			page.More = true
		}
		index++
		if page.More {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Page{}, fmt.Errorf("read feed: %w", err)
	}
	page.Next = offset + len(page.Lines)
	return page, nil
}

// Generated produces numbered lines. Total <= 0 means the feed never ends.
// Width pads each line so horizontal scrolling has something to show.
type Generated struct {
	Total int
	Width int
	Clock clock.Clock
}

const filler = " ·─·"

// Page builds the requested lines. Each line carries the time it was
// generated so a refresh is visible.
func (g Generated) Page(ctx context.Context, offset, limit int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if offset < 0 {
		offset = 0
	}
	clk := g.Clock
	if clk == nil {
		clk = clock.Real()
	}
	stamp := clk.Now().Format("15:04:05")

	end := offset + max(limit, 0)
	if g.Total > 0 && end > g.Total {
		end = max(g.Total, offset)
	}
	page := Page{Lines: make([]string, 0, end-offset)}
	for i := offset; i < end; i++ {
		line := fmt.Sprintf("%04d  item %d  fetched %s", i+1, i+1, stamp)
		if pad := g.Width - len([]rune(line)); pad > 0 {
			line += strings.Repeat(filler, pad/len([]rune(filler))+1)
			line = string([]rune(line)[:g.Width])
		}
		page.Lines = append(page.Lines, line)
	}
	page.Next = end
	page.More = g.Total <= 0 || end < g.Total
	return page, nil
}
