package alternativeme

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fgibacktest/pkg/httpclient"

	"github.com/shopspring/decimal"
)

const DefaultBaseUrl = "https://api.alternative.me"

// usDateLayout is what the api returns for date_format=us
const usDateLayout = "01-02-2006"

type Client struct {
	baseUrl string
	http    *httpclient.Client
}

func NewClient(baseUrl string, http *httpclient.Client) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		http:    http,
	}
}

type fngResponse struct {
	Name     string      `json:"name"`
	Data     []fngRecord `json:"data"`
	Metadata struct {
		Error *string `json:"error"`
	} `json:"metadata"`
}

type fngRecord struct {
	Value               string `json:"value"`
	ValueClassification string `json:"value_classification"`
	Timestamp           string `json:"timestamp"`
}

type Observation struct {
	Date           time.Time
	Value          decimal.Decimal
	Classification string
}

// History holds the parsed observations and how many records were skipped
// because they were missing a field or could not be parsed
type History struct {
	Observations []Observation
	Skipped      int
}

// GetHistory pulls the whole index history. limit=0 asks the api for
// every record it has
func (c Client) GetHistory(ctx context.Context) (*History, error) {
	params := url.Values{
		"limit":       {"0"},
		"format":      {"json"},
		"date_format": {"us"},
	}
	response := fngResponse{}
	if err := c.http.GetJSON(ctx, c.baseUrl+"/fng/", params, &response); err != nil {
		return nil, fmt.Errorf("failed to get fear and greed history: %w", err)
	}
	if response.Metadata.Error != nil && *response.Metadata.Error != "" {
		return nil, fmt.Errorf("fear and greed api returned error: %s", *response.Metadata.Error)
	}

	out := &History{
		Observations: []Observation{},
	}
	for _, r := range response.Data {
		o, err := parseRecord(r)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Observations = append(out.Observations, *o)
	}
	return out, nil
}

func parseRecord(r fngRecord) (*Observation, error) {
	if r.Value == "" || r.Timestamp == "" {
		return nil, fmt.Errorf("record missing value or timestamp")
	}
	value, err := decimal.NewFromString(strings.TrimSpace(r.Value))
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", r.Value, err)
	}
	date, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return nil, err
	}
	return &Observation{
		Date:           date,
		Value:          value,
		Classification: r.ValueClassification,
	}, nil
}

// ParseTimestamp accepts either unix seconds or an MM-DD-YYYY string
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := time.Parse(usDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
	}
	return t, nil
}
