package main

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/valyala/fasthttp"
)

var ctlJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// apiClient is a thin wrapper over the swap_desk REST API.
type apiClient struct {
	baseURL string
	apiKey  string
	http    *fasthttp.Client
}

// envelope mirrors the {success, data} body every endpoint returns.
type envelope struct {
	Success bool                `json:"success"`
	Data    jsoniter.RawMessage `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// newAPIClient resolves the base URL and API key from flags, environment
// variables (SWAPCTL_BASE_URL, SWAPCTL_API_KEY) or a .swapctl.yaml file.
func newAPIClient(cmd *cobra.Command) (*apiClient, error) {
	viper.SetConfigName(".swapctl")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	viper.SetDefault("base_url", "http://localhost:8080")

	viper.SetEnvPrefix("SWAPCTL")
	viper.AutomaticEnv()

	// Config file is optional.
	_ = viper.ReadInConfig()

	baseURL := viper.GetString("base_url")
	apiKey := viper.GetString("api_key")
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		baseURL = v
	}
	if v, _ := cmd.Flags().GetString("api-key"); v != "" {
		apiKey = v
	}
	if baseURL == "" {
		return nil, fmt.Errorf("base URL not set. Use --base-url, SWAPCTL_BASE_URL or a .swapctl.yaml file")
	}

	return &apiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &fasthttp.Client{},
	}, nil
}

func (c *apiClient) do(method, path string, body interface{}, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if body != nil {
		payload, err := ctlJSON.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := c.http.DoTimeout(req, resp, 30*time.Second); err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}

	var env envelope
	if err := ctlJSON.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("unexpected response from %s (status %d)", path, resp.StatusCode())
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("%s", env.Error)
		}
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode())
	}
	if out != nil && len(env.Data) > 0 {
		if err := ctlJSON.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

func (c *apiClient) get(path string, out interface{}) error {
	return c.do(fasthttp.MethodGet, path, nil, out)
}

func (c *apiClient) post(path string, body, out interface{}) error {
	return c.do(fasthttp.MethodPost, path, body, out)
}
