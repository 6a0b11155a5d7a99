package flu

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/epiweek"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/ingestion"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/model"
)

// RegionPrefix groups reference regions into HHS regions.
const RegionPrefix = "hhs"

// Client fetches FluView surveillance data from the Delphi epidata API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new epidata API client authenticated with apiKey.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		// No timeout beyond the transport defaults.
		httpClient: &http.Client{},
	}
}

func (c *Client) Source() model.Source {
	return model.SourceFlu
}

// Fetch requests the region's data for the lagged epiweek of req.Date and
// returns the raw response body.
func (c *Client) Fetch(ctx context.Context, req ingestion.FetchRequest) (ingestion.FetchResult, error) {
	week, err := epiweek.Compute(req.Date)
	if err != nil {
		return ingestion.FetchResult{}, &ClientError{Message: "failed to compute epiweek", Err: err}
	}
	region := RegionPrefix + req.Region

	slog.InfoContext(ctx, "requesting flu data", "region", region, "epiweek", week, "url", c.requestURL(region, week, "REDACTED"))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(region, week, c.apiKey), nil)
	if err != nil {
		return ingestion.FetchResult{}, &ClientError{Message: "failed to build request", Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// url.Error embeds the full URL, including the key.
		return ingestion.FetchResult{}, &ClientError{Message: "request failed", Err: redact(err, c.apiKey)}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return ingestion.FetchResult{}, &ClientError{
			Message: fmt.Sprintf("fetch %s epiweek %s", region, week),
			Err:     &apiError{StatusCode: resp.StatusCode, Message: "unexpected response"},
		}
	}

	// Caller must close the body
	return ingestion.FetchResult{
		Body:   resp.Body,
		Source: model.SourceFlu,
		Region: region,
	}, nil
}

// requestURL builds {baseURL}/?regions={region}&epiweeks={week}&auth={key}.
func (c *Client) requestURL(region, week, key string) string {
	return fmt.Sprintf("%s/?regions=%s&epiweeks=%s&auth=%s",
		c.baseURL, url.QueryEscape(region), url.QueryEscape(week), url.QueryEscape(key))
}

func redact(err error, key string) error {
	if uerr, ok := err.(*url.Error); ok && key != "" {
		return &url.Error{
			Op:  uerr.Op,
			URL: strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED"),
			Err: uerr.Err,
		}
	}
	return err
}
