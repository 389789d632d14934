package inara_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/httpclient"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/inara"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/staleness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>Lave | Inara</title>
<script>var updated = "1 Jan 3300, 1:00 am";</script>
<style>.x{}</style></head>
<body>
<div class="itempaircontainer"><div class="itempairlabel">Info updated</div>
<div class="itempairvalue">12 Mar 3311,&nbsp;9:41&nbsp;PM</div></div>
<table><tr><td>Last visit</td><td>3 Feb 3311, 10:02am</td></tr></table>
<p>Population: 1,234,567</p>
</body></html>`

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) *http.Response
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req), nil
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newSource(fn func(req *http.Request) *http.Response) *inara.Source {
	client := httpclient.New(0, "EDPPM/test").WithTransport(&MockRoundTripper{RoundTripFunc: fn})
	return inara.New(client, domain.DefaultFreshnessURL, 0)
}

func TestSource_FetchFreshness(t *testing.T) {
	t.Parallel()

	src := newSource(func(req *http.Request) *http.Response {
		assert.Equal(t, "inara.cz", req.URL.Host)
		assert.Equal(t, "/elite/starsystem/", req.URL.Path)
		assert.Equal(t, "Lave", req.URL.Query().Get("search"))
		assert.Equal(t, "text/html", req.Header.Get("Accept"))
		return respond(http.StatusOK, page)
	})

	got, err := src.FetchFreshness(context.Background(), "Lave")
	require.NoError(t, err)
	assert.Equal(t, []string{"12 Mar 3311, 9:41 PM", "3 Feb 3311, 10:02am"}, got)

	latest, ok := staleness.Latest(got, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(3311, time.March, 12, 21, 41, 0, 0, time.UTC), latest)
}

func TestSource_NoCandidates(t *testing.T) {
	t.Parallel()

	src := newSource(func(*http.Request) *http.Response {
		return respond(http.StatusOK, "<html><body>No system found</body></html>")
	})

	got, err := src.FetchFreshness(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, want: domain.ErrRateLimited},
		{name: "forbidden", status: http.StatusForbidden, want: domain.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := newSource(func(*http.Request) *http.Response { return respond(tt.status, "") })
			_, err := src.FetchFreshness(context.Background(), "Lave")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want.Error())
		})
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	got, err := inara.ExtractText(strings.NewReader(`<p>a&nbsp;b</p><script>x()</script><b> c </b>`))
	require.NoError(t, err)
	assert.Equal(t, "a b c", got)
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"1 Jan 3311, 1:00AM", "22 dec 3310, 11:59 pm"},
		inara.Candidates("x 1 Jan 3311, 1:00AM y 22 dec 3310, 11:59 pm z 5 May 3311, 14:00"),
	)
	assert.Empty(t, inara.Candidates("nothing here"))
}
