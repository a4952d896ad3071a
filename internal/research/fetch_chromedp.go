package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	readability "github.com/go-shiori/go-readability"

	"github.com/mohammad-safakhou/breakdown/internal/helpers"
)

// ChromedpFetcher renders pages in headless Chrome before extraction, for
// sources that only produce content client-side.
type ChromedpFetcher struct {
	Timeout  time.Duration
	MaxChars int
}

func (f *ChromedpFetcher) Fetch(ctx context.Context, r Result) (Page, error) {
	if strings.TrimSpace(r.Link) == "" {
		return Page{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	html, err := renderHTML(ctx, r.Link)
	if err != nil {
		return Page{}, fmt.Errorf("render: %w", err)
	}

	title := r.Title
	var text string
	if article, err := readability.FromReader(strings.NewReader(html), parseURL(r.Link)); err == nil {
		text = helpers.CollapseWhitespace(article.TextContent)
		if t := strings.TrimSpace(article.Title); t != "" {
			title = t
		}
	}
	if text == "" {
		text = helpers.StripMarkup(html)
	}

	return Page{
		Title: title,
		URL:   r.Link,
		Text:  truncate(text, f.MaxChars),
	}, nil
}

func renderHTML(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent(fetchUserAgent),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}
