// Package scraper fetches a Wikipedia article and pulls out the title and
// body text the quiz generator works from.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	userAgent = "WikiQuizGenerator/1.0"

	// MaxTextLen caps the article text handed to the generator.
	MaxTextLen = 5000

	maxBodyBytes = 10 << 20
)

// ErrUnreachable is returned when the page answers with anything but 200.
var ErrUnreachable = errors.New("article unreachable")

// Article is the scraped content of one page.
type Article struct {
	Title   string
	Text    string
	RawHTML string
}

// Scraper fetches articles over HTTP.
type Scraper struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Scraper. A nil client gets a 30s timeout; a nil logger
// discards output.
func New(httpClient *http.Client, logger *zap.Logger) *Scraper {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{httpClient: httpClient, logger: logger}
}

// Fetch downloads url and extracts the article. A non-200 response wraps
// ErrUnreachable.
func (s *Scraper) Fetch(ctx context.Context, url string) (*Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("article fetch failed", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w (status %d)", ErrUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	article, err := Parse(body)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("article fetched",
		zap.String("url", url),
		zap.String("title", article.Title),
		zap.Int("text_chars", len(article.Text)),
	)
	return article, nil
}

// Parse extracts the article from a page body. The title is the text of
// #firstHeading; the text is every non-empty <p> inside #bodyContent,
// joined by spaces and cut to MaxTextLen.
func Parse(body []byte) (*Article, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	heading := findByID(doc, "firstHeading")
	if heading == nil {
		return nil, errors.New("page has no #firstHeading")
	}
	content := findByID(doc, "bodyContent")
	if content == nil {
		return nil, errors.New("page has no #bodyContent")
	}

	var paragraphs []string
	walk(content, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			if p := strings.TrimSpace(textOf(n)); p != "" {
				paragraphs = append(paragraphs, p)
			}
			return false
		}
		return true
	})

	return &Article{
		Title:   strings.TrimSpace(textOf(heading)),
		Text:    truncate(strings.Join(paragraphs, " "), MaxTextLen),
		RawHTML: string(body),
	}, nil
}

// walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					found = n
					return false
				}
			}
		}
		return true
	})
	return found
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
