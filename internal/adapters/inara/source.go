// Package inara implements the freshness source backed by the Inara star system pages.
package inara

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/httpclient"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var timestampRegex = regexp.MustCompile(`(?i)\d{1,2}\s[A-Za-z]{3}\s\d{4},\s\d{1,2}:\d{2}\s*(?:am|pm)`)

// Source implements ports.FreshnessSource.
type Source struct {
	client   *httpclient.Client
	endpoint string
	pause    time.Duration
}

// New creates a Source querying endpoint. pause is the wait before retrying a rate limited request.
func New(client *httpclient.Client, endpoint string, pause time.Duration) *Source {
	return &Source{client: client, endpoint: endpoint, pause: pause}
}

// FetchFreshness returns the timestamp candidates on the page of name, in document order.
func (s *Source) FetchFreshness(ctx context.Context, name string) ([]string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNetworkFailure.Error())
	}
	q := u.Query()
	q.Set("search", name)
	u.RawQuery = q.Encode()

	body, err := s.client.GetWithRetry(ctx, u.String(), "text/html", s.pause)
	if err != nil {
		return nil, zerr.With(err, "system", name)
	}

	text, err := ExtractText(bytes.NewReader(body))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMalformedPayload.Error()), "system", name)
	}
	return Candidates(text), nil
}

// ExtractText joins the text nodes of an HTML document with single spaces.
// Script and style contents are dropped; non-breaking spaces become plain spaces.
func ExtractText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var (
		b    strings.Builder
		skip int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return b.String(), nil
			}
			return "", z.Err()
		case html.StartTagToken:
			if isRawText(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawText(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := strings.ReplaceAll(string(z.Text()), "\u00a0", " ")
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(text)
		}
	}
}

func isRawText(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	a := atom.Lookup(name)
	return a == atom.Script || a == atom.Style
}

// Candidates returns every timestamp-like substring of text in order.
func Candidates(text string) []string {
	matches := timestampRegex.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
