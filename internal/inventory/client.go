package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecomarket/internal/logger"
	"ecomarket/internal/product"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const productsPath = "/api/productos"

// Client-side throttle for the remote inventory API. The fan-out during
// checkout issues one PUT per cart line, so the burst must cover a full cart.
const (
	remoteLimit = rate.Limit(20)
	remoteBurst = 40
)

// Remote abstracts the inventory service endpoints the store needs.
type Remote interface {
	FetchAll(ctx context.Context) ([]product.Product, error)
	Create(ctx context.Context, p product.Product) error
	Update(ctx context.Context, code string, p product.Product) error
	Delete(ctx context.Context, code string) error
}

// client talks JSON over HTTP to the remote inventory service.
type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Remote backed by the inventory service at baseURL.
func NewClient(baseURL string) Remote {
	if baseURL == "" {
		logger.L().Warn("inventory API base URL is empty")
	}

	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(remoteLimit, remoteBurst),
	}
}

func (c *client) FetchAll(ctx context.Context) ([]product.Product, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+productsPath, nil)
	if err != nil {
		return nil, err
	}

	var products []product.Product
	if err := json.Unmarshal(body, &products); err != nil {
		logger.L().Error("failed decoding product list", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return products, nil
}

func (c *client) Create(ctx context.Context, p product.Product) error {
	jsonBody, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	_, err = c.do(ctx, http.MethodPost, c.baseURL+productsPath, jsonBody)
	return err
}

func (c *client) Update(ctx context.Context, code string, p product.Product) error {
	jsonBody, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	_, err = c.do(ctx, http.MethodPut, c.baseURL+productsPath+"/"+code, jsonBody)
	return err
}

func (c *client) Delete(ctx context.Context, code string) error {
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+productsPath+"/"+code, nil)
	return err
}

// do issues one request and maps the response to the error taxonomy: any
// transport problem becomes ErrNetwork, a non-2xx with a usable {message}
// becomes a RejectionError, a non-2xx without one becomes ErrNetwork.
func (c *client) do(ctx context.Context, method, url string, jsonBody []byte) ([]byte, error) {
	log := logger.L().With(
		zap.String("method", method),
		zap.String("url", url),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var reader io.Reader
	if jsonBody != nil {
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("inventory request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("inventory service returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)

		var rejection struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &rejection); err == nil && rejection.Message != "" {
			return nil, &RejectionError{Message: rejection.Message}
		}
		return nil, fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	return bodyBytes, nil
}
