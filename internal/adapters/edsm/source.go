// Package edsm implements the coordinate source backed by the EDSM systems API.
package edsm

import (
	"context"
	"net/url"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/httpclient"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"
)

// Source implements ports.CoordinateSource.
type Source struct {
	client   *httpclient.Client
	endpoint string
	pause    time.Duration
}

// New creates a Source querying endpoint. pause is the wait before retrying a rate limited request.
func New(client *httpclient.Client, endpoint string, pause time.Duration) *Source {
	return &Source{client: client, endpoint: endpoint, pause: pause}
}

// FetchCoordinates looks up the coordinates of name.
func (s *Source) FetchCoordinates(ctx context.Context, name string) (domain.Coordinate, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return domain.Coordinate{}, zerr.Wrap(err, domain.ErrNetworkFailure.Error())
	}
	q := u.Query()
	q.Set("systemName", name)
	q.Set("showCoordinates", "1")
	u.RawQuery = q.Encode()

	body, err := s.client.GetWithRetry(ctx, u.String(), "application/json", s.pause)
	if err != nil {
		return domain.Coordinate{}, zerr.With(err, "system", name)
	}

	c, err := ParseCoordinates(body)
	if err != nil {
		return domain.Coordinate{}, zerr.With(err, "system", name)
	}
	return c, nil
}

// ParseCoordinates reads the coords object of a system response.
// EDSM answers an unknown system with an empty array or an object without coords.
func ParseCoordinates(body []byte) (domain.Coordinate, error) {
	if !gjson.ValidBytes(body) {
		return domain.Coordinate{}, domain.ErrMalformedPayload
	}

	coords := gjson.GetBytes(body, "coords")
	if !coords.IsObject() {
		return domain.Coordinate{}, domain.ErrCoordinatesNotFound
	}

	x, y, z := coords.Get("x"), coords.Get("y"), coords.Get("z")
	if x.Type != gjson.Number || y.Type != gjson.Number || z.Type != gjson.Number {
		return domain.Coordinate{}, domain.ErrMalformedPayload
	}
	return domain.Coordinate{X: x.Num, Y: y.Num, Z: z.Num}, nil
}
