package covid

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/ingestion"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/model"
)

// Client fetches historical case counts for one state from the disease.sh
// API.
type Client struct {
	baseURL    string
	lastDays   int
	httpClient *http.Client
}

// NewClient creates a new disease API client requesting the trailing
// lastDays days of data.
func NewClient(baseURL string, lastDays int) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		lastDays: lastDays,
		// No timeout beyond the transport defaults.
		httpClient: &http.Client{},
	}
}

func (c *Client) Source() model.Source {
	return model.SourceCovid
}

// Fetch requests the state's data and returns the raw response body.
func (c *Client) Fetch(ctx context.Context, req ingestion.FetchRequest) (ingestion.FetchResult, error) {
	state := strings.ReplaceAll(req.State, "_", " ")
	u := c.requestURL(state)

	slog.InfoContext(ctx, "requesting covid data", "state", state, "url", u)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ingestion.FetchResult{}, &ClientError{Message: "failed to build request", Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ingestion.FetchResult{}, &ClientError{Message: "request failed", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return ingestion.FetchResult{}, &ClientError{
			Message: fmt.Sprintf("fetch %q", state),
			Err:     &apiError{StatusCode: resp.StatusCode, Message: "unexpected response"},
		}
	}

	// Caller must close the body
	return ingestion.FetchResult{
		Body:   resp.Body,
		Source: model.SourceCovid,
		Region: state,
		Suffix: fmt.Sprintf("_last%d", c.lastDays),
	}, nil
}

// requestURL builds {baseURL}/{state}?lastdays={n}.
func (c *Client) requestURL(state string) string {
	return fmt.Sprintf("%s/%s?lastdays=%d", c.baseURL, url.PathEscape(state), c.lastDays)
}
