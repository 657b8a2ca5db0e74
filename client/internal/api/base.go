package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	clienterrors "github.com/bquirin/MonzoAPIWrapper/client/internal/errors"
	"github.com/bquirin/MonzoAPIWrapper/client/internal/types"
)

// errNotObject is wrapped in a DecodeError when a 200 body decodes to JSON null.
var errNotObject = errors.New("response is not a JSON object")

// NewRestyClient builds the request executor on top of httpClient, whose
// transport already carries the Authorization header.
func NewRestyClient(httpClient *http.Client, baseURL string) *resty.Client {
	return resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(zerologAdapter{})
}

// Get issues a GET to path with params and returns the response when the
// status is 200. Parameters with empty values are dropped.
func Get(ctx context.Context, rc *resty.Client, operation, path string, params url.Values) (*types.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := rc.R().SetContext(ctx)
	if q := compactValues(params); len(q) > 0 {
		req.SetQueryParamsFromValues(q)
	}

	start := time.Now()
	resp, err := req.Get(path)
	elapsed := time.Since(start)
	if err != nil {
		observe(operation, "error", elapsed)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, clienterrors.NewNetworkError(operation, err)
	}
	observe(operation, strconv.Itoa(resp.StatusCode()), elapsed)

	if resp.StatusCode() != http.StatusOK {
		log.Debug().
			Str("operation", operation).
			Int("status_code", resp.StatusCode()).
			Dur("elapsed", elapsed).
			Msg("monzo request failed")
		return nil, clienterrors.NewHTTPError(operation, resp.StatusCode(), resp.Body())
	}

	return &types.Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// GetDocument is Get followed by decoding the body as a JSON object.
func GetDocument(ctx context.Context, rc *resty.Client, operation, path string, params url.Values) (types.Document, error) {
	resp, err := Get(ctx, rc, operation, path, params)
	if err != nil {
		return nil, err
	}
	doc, err := resp.Document()
	if err != nil {
		return nil, clienterrors.NewDecodeError(operation, err)
	}
	if doc == nil {
		return nil, clienterrors.NewDecodeError(operation, errNotObject)
	}
	return doc, nil
}

// compactValues drops keys without a non-empty value.
func compactValues(params url.Values) url.Values {
	if len(params) == 0 {
		return nil
	}
	out := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}

// zerologAdapter routes resty's internal logging through zerolog.
type zerologAdapter struct{}

func (zerologAdapter) Errorf(format string, v ...interface{}) {
	log.Error().Str("component", "resty").Msgf(format, v...)
}

func (zerologAdapter) Warnf(format string, v ...interface{}) {
	log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (zerologAdapter) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}
