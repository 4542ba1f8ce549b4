package ordinals

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/pkg/httpclient"
	"github.com/gaze-network/bitmap-indexer/pkg/logger"
	"github.com/gaze-network/bitmap-indexer/pkg/logger/slogx"
	"github.com/gaze-network/bitmap-indexer/pkg/retry"
	"golang.org/x/time/rate"
)

const defaultRequestTimeout = 30 * time.Second

// Make sure to implement the Datasource interface
var _ Datasource = (*Client)(nil)

type ClientOptions struct {
	// RequestTimeout bounds each lookup, retries included. Defaults to 30s.
	RequestTimeout time.Duration

	// RequestsPerSecond throttles calls to the public endpoint.
	// Zero means no throttling.
	RequestsPerSecond float64

	// Retry policy for transient failures. Defaults to retry.DefaultPolicy.
	Retry retry.Policy

	// Debug enables request logging on the underlying http client.
	Debug bool
}

// Client queries the ord data service over its recursive HTTP endpoints.
type Client struct {
	client  *httpclient.Client
	timeout time.Duration
	limiter *rate.Limiter
	retry   retry.Policy
}

func NewClient(endpoint string, opts ClientOptions) (*Client, error) {
	httpClient, err := httpclient.New(endpoint, httpclient.Config{
		Debug: opts.Debug,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid ord endpoint")
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	retryPolicy := opts.Retry
	if retryPolicy.MaxAttempts == 0 {
		retryPolicy = retry.DefaultPolicy
	}

	return &Client{
		client:  httpClient,
		timeout: timeout,
		limiter: limiter,
		retry:   retryPolicy,
	}, nil
}

// get performs one rate-limited, retried GET and hands the response to parse.
// A 404 is reported as errs.NotFound without retrying; other non-2xx statuses
// as errs.RemoteLookup.
func (c *Client) get(ctx context.Context, path string, parse func(resp *httpclient.HttpResponse) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.retry.Do(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limiter")
		}

		resp, err := c.client.Get(ctx, path, httpclient.RequestOptions{})
		if err != nil {
			return errors.Wrapf(errs.RemoteLookup, "request %s: %v", path, err)
		}
		statusCode := resp.StatusCode()
		if statusCode == http.StatusNotFound {
			// not retryable, surface immediately
			return retry.Permanent(errors.Wrapf(errs.NotFound, "%s", path))
		}
		if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
			return errors.Wrapf(errs.RemoteLookup, "request %s: unexpected status %d", path, statusCode)
		}
		return parse(resp)
	})
}

func (c *Client) GetContent(ctx context.Context, id InscriptionId) (string, error) {
	var content string
	err := c.get(ctx, fmt.Sprintf("/content/%s", id), func(resp *httpclient.HttpResponse) error {
		body, err := resp.BodyText()
		if err != nil {
			return errors.WithStack(err)
		}
		content = body
		return nil
	})
	if err != nil {
		return "", errors.WithStack(err)
	}
	return content, nil
}

func (c *Client) GetInscription(ctx context.Context, id InscriptionId) (Inscription, error) {
	var inscription Inscription
	err := c.get(ctx, fmt.Sprintf("/r/inscription/%s", id), func(resp *httpclient.HttpResponse) error {
		return errors.WithStack(resp.UnmarshalBody(&inscription))
	})
	if err != nil {
		return Inscription{}, errors.WithStack(err)
	}
	return inscription, nil
}

func (c *Client) GetChildren(ctx context.Context, id InscriptionId) ([]InscriptionId, error) {
	children := make([]InscriptionId, 0)
	for page := uint64(0); ; page++ {
		var result childrenResponse
		err := c.get(ctx, fmt.Sprintf("/r/children/%s/%d", id, page), func(resp *httpclient.HttpResponse) error {
			return errors.WithStack(resp.UnmarshalBody(&result))
		})
		if err != nil {
			// no children endpoint on the first page means no children
			if page == 0 && errors.Is(err, errs.NotFound) {
				return children, nil
			}
			return nil, errors.WithStack(err)
		}

		children = append(children, result.Ids...)
		if !result.More || len(result.Ids) == 0 {
			break
		}
	}
	logger.DebugContext(ctx, "Fetched inscription children",
		slogx.Stringer("id", id),
		slogx.Int("count", len(children)),
	)
	return children, nil
}

func (c *Client) GetBlockInfo(ctx context.Context, height uint64) (BlockInfo, error) {
	var blockInfo BlockInfo
	err := c.get(ctx, fmt.Sprintf("/r/blockinfo/%d", height), func(resp *httpclient.HttpResponse) error {
		return errors.WithStack(resp.UnmarshalBody(&blockInfo))
	})
	if err != nil {
		return BlockInfo{}, errors.WithStack(err)
	}
	return blockInfo, nil
}

func (c *Client) GetSatInscriptionId(ctx context.Context, sat uint64, index int64) (InscriptionId, error) {
	var result satAtResponse
	err := c.get(ctx, fmt.Sprintf("/r/sat/%d/at/%d", sat, index), func(resp *httpclient.HttpResponse) error {
		return errors.WithStack(resp.UnmarshalBody(&result))
	})
	if err != nil {
		return InscriptionId{}, errors.WithStack(err)
	}
	if result.Id == nil {
		return InscriptionId{}, errors.Wrapf(errs.RemoteLookup, "no inscription at index %d of sat %d", index, sat)
	}
	return *result.Id, nil
}
