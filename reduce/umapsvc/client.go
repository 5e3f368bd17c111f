package umapsvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinevec/cinevec/reduce"
)

// maxErrorBodySize limits how much of an error response body is read back
// for diagnostics.
const maxErrorBodySize = 64 * 1024

// DefaultTimeout bounds a single reduction request. UMAP over a full
// dataset runs for minutes, so this is generous.
const DefaultTimeout = 15 * time.Minute

// Config holds configuration for the reduction service client.
type Config struct {
	// ServiceURL is the endpoint accepting reduction requests.
	ServiceURL string

	// Params are the projection parameters sent with every request.
	Params reduce.Params

	// Timeout bounds a single reduction request. Default: DefaultTimeout.
	Timeout time.Duration
}

// Client sends embedding matrices to an external UMAP service.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

var _ reduce.Reducer = (*Client)(nil)

// NewClient creates a reduction service client. The service URL is
// required and the projection parameters must validate.
func NewClient(config Config) (*Client, error) {
	if config.ServiceURL == "" {
		return nil, ErrServiceURLRequired
	}
	if err := config.Params.Validate(); err != nil {
		return nil, err
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: slog.Default().With("component", "umapsvc"),
	}, nil
}

type reduceRequest struct {
	Vectors   [][]float32 `json:"vectors"`
	OutputDim int         `json:"output_dim"`
	Metric    string      `json:"metric"`
	Neighbors int         `json:"neighbors"`
	MinDist   float64     `json:"min_dist"`
	Seed      int64       `json:"seed"`
}

type reduceResponse struct {
	Vectors [][]float32 `json:"vectors"`
}

// Reduce posts the embedding matrix to the service and returns the
// projected rows, one per input vector in input order.
func (c *Client) Reduce(ctx context.Context, vectors [][]float32) ([][]float32, error) {
	if len(vectors) == 0 {
		return [][]float32{}, nil
	}

	payload := reduceRequest{
		Vectors:   vectors,
		OutputDim: c.config.Params.OutputDim,
		Metric:    c.config.Params.Metric,
		Neighbors: c.config.Params.Neighbors,
		MinDist:   c.config.Params.MinDist,
		Seed:      c.config.Params.Seed,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reduction request: %w", err)
	}

	c.logger.Debug("requesting reduction",
		"rows", len(vectors),
		"input_dims", len(vectors[0]),
		"output_dims", c.config.Params.OutputDim)

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ServiceURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create reduction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reduction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readBodyForError(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrServiceFailed, resp.StatusCode, detail)
	}

	var result reduceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode reduction response: %w", err)
	}

	if len(result.Vectors) != len(vectors) {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrShapeMismatch, len(result.Vectors), len(vectors))
	}
	for i, row := range result.Vectors {
		if len(row) != c.config.Params.OutputDim {
			return nil, fmt.Errorf("%w: row %d has %d dimensions, want %d",
				ErrShapeMismatch, i, len(row), c.config.Params.OutputDim)
		}
	}

	c.logger.Debug("reduction complete",
		"rows", len(result.Vectors),
		"duration", time.Since(start))

	return result.Vectors, nil
}

// readBodyForError reads a bounded amount of the response body for error
// reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}
