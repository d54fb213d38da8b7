package aggregator

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"swap_desk/internal/app/port"
	"swap_desk/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// aggregateRequest is the documented backend body.
type aggregateRequest struct {
	Token1Address string `json:"token1Address"`
	Token1Amount  string `json:"token1Amount"`
	Token2Address string `json:"token2Address"`
}

// Client talks to the aggregation backend. One request per call, no
// internal retry.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  port.Logger
}

// NewClient creates an aggregator client for the given backend URL.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger port.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger,
	}
}

// Aggregate posts the swap parameters and decodes the route mapping. A 2xx
// response with an empty mapping is a valid "no route" result; network
// failures, non-2xx statuses and malformed bodies are errors.
func (c *Client) Aggregate(ctx context.Context, sourceAddress, amount, destinationAddress string) (entity.RouteResult, error) {
	if c.baseURL == "" {
		return entity.NoRoute(), fmt.Errorf("aggregator backend URL not configured")
	}

	body, err := json.Marshal(aggregateRequest{
		Token1Address: sourceAddress,
		Token1Amount:  amount,
		Token2Address: destinationAddress,
	})
	if err != nil {
		return entity.NoRoute(), fmt.Errorf("failed to encode aggregate request: %w", err)
	}

	requestURL := c.baseURL + "/aggregate"
	c.logger.Debug("requesting route from aggregator", "url", requestURL, "amount", amount)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return entity.NoRoute(), fmt.Errorf("aggregate request to %s failed: %w", requestURL, err)
	}

	rawBody := resp.Body()
	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return entity.NoRoute(), fmt.Errorf("aggregate request to %s failed with status %d: %s", requestURL, status, string(rawBody))
	}

	var mapping map[string]interface{}
	if err := json.Unmarshal(rawBody, &mapping); err != nil {
		return entity.NoRoute(), fmt.Errorf("malformed aggregate response from %s: %w. Body: %s", requestURL, err, string(rawBody))
	}

	if len(mapping) == 0 {
		return entity.EmptyRoute(), nil
	}
	return entity.LegsRoute(mappingToLegs(mapping)), nil
}

// mappingToLegs flattens the address->amount mapping into legs ordered by
// address, so repeated snapshots of the same route compare equal.
func mappingToLegs(mapping map[string]interface{}) []entity.RouteLeg {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	legs := make([]entity.RouteLeg, 0, len(keys))
	for _, k := range keys {
		legs = append(legs, entity.RouteLeg{Address: k, Amount: stringifyAmount(mapping[k])})
	}
	return legs
}

func stringifyAmount(v interface{}) string {
	switch amount := v.(type) {
	case string:
		return amount
	case float64:
		return strconv.FormatFloat(amount, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", amount)
	}
}
