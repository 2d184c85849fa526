// Package entropy provides fresh map seeds, from random.org when an API key is
// configured and from crypto/rand otherwise.
package entropy

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// DefaultEndpoint is the random.org JSON-RPC endpoint.
const DefaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

// randomOrgMax is the largest integer random.org hands out per draw.
const randomOrgMax = 1_000_000_000

// Client draws seeds from random.org.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the client at another JSON-RPC endpoint.
func (c *Client) WithEndpoint(url string) *Client {
	c.endpoint = url
	return c
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Seed returns a non-zero seed. It asks c when enabled and falls back to
// crypto/rand on any failure.
func Seed(c *Client) int64 {
	if c.Enabled() {
		seed, err := c.fetchSeed()
		if err == nil {
			return seed
		}
		slog.Debug("random.org seed failed, using crypto/rand", "error", err)
	}
	return CryptoSeed()
}

// fetchSeed combines two random.org integers into one 60-bit seed.
func (c *Client) fetchSeed() (int64, error) {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateIntegers",
		"params": map[string]any{
			"apiKey": c.apiKey,
			"n":      2,
			"min":    0,
			"max":    randomOrgMax,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshal: %w", err)
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	var result struct {
		Result struct {
			Random struct {
				Data []int64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}
	if result.Error != nil {
		return 0, fmt.Errorf("api error: %s", result.Error.Message)
	}

	data := result.Result.Random.Data
	if len(data) < 2 {
		return 0, fmt.Errorf("short response: %d integers", len(data))
	}

	seed := (data[0]<<30 | data[1]) & math.MaxInt64
	if seed == 0 {
		return 0, fmt.Errorf("zero seed")
	}
	slog.Debug("random.org seed drawn", "seed", seed)
	return seed, nil
}

// CryptoSeed returns a non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			// This should never happen; fall back to the clock.
			return time.Now().UnixNano() | 1
		}
		seed := int64(binary.LittleEndian.Uint64(buf[:]) & math.MaxInt64)
		if seed != 0 {
			return seed
		}
	}
}
