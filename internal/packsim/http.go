package packsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTP status code constants.
const (
	statusOK = 200
)

// HTTPClient wraps http.Client with a timeout and the identity header.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request as the given user.
func (c *HTTPClient) Get(ctx context.Context, url, asUser string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if asUser != "" {
		req.Header.Set("X-User-ID", asUser)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body as the given user.
func (c *HTTPClient) Post(ctx context.Context, url, asUser string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, url, asUser, body)
}

// Put performs a PUT request with a JSON body as the given user.
func (c *HTTPClient) Put(ctx context.Context, url, asUser string, body any) (*http.Response, error) {
	return c.send(ctx, http.MethodPut, url, asUser, body)
}

func (c *HTTPClient) send(ctx context.Context, method, url, asUser string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set("X-User-ID", asUser)
	}
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// openPacks opens packs concurrently using a worker pool and collects the
// drawn instance ids.
func openPacks(ctx context.Context, config *Config, stats *Stats) ([]string, error) {
	log.Printf("opening %d packs with %d workers...", config.NumPacks, config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/packs/open"

	var (
		drawn    int64
		declined int64
		failed   int64
		highTier int64
	)

	var mu sync.Mutex
	var instanceIDs []string

	jobs := make(chan struct{}, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				resp, err := client.Post(ctx, url, config.UserID, nil)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				body, err := readResponseBody(resp)
				if err != nil || resp.StatusCode != statusOK {
					atomic.AddInt64(&failed, 1)
					continue
				}

				var opened openPackResponse
				if err := json.Unmarshal(body, &opened); err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				if !opened.Drawn || opened.Instance == nil {
					atomic.AddInt64(&declined, 1)
					continue
				}

				atomic.AddInt64(&drawn, 1)
				if opened.Instance.Rating >= eliteRatingMin {
					atomic.AddInt64(&highTier, 1)
				}
				mu.Lock()
				instanceIDs = append(instanceIDs, opened.Instance.ID)
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < config.NumPacks; i++ {
		select {
		case <-ctx.Done():
			break
		case jobs <- struct{}{}:
		}
	}
	close(jobs)
	wg.Wait()

	stats.PacksRequested = config.NumPacks
	stats.PacksDrawn = int(drawn)
	stats.PacksDeclined = int(declined)
	stats.PacksFailed = int(failed)
	stats.HighTierDrawn = int(highTier)

	log.Printf("pack opening completed: drawn=%d declined=%d failed=%d", drawn, declined, failed)
	return instanceIDs, nil
}

// sellInstances quick-sells every Nth drawn instance and sums the refunds.
func sellInstances(ctx context.Context, config *Config, instanceIDs []string, stats *Stats) error {
	if config.SellEvery <= 0 || len(instanceIDs) == 0 {
		return nil
	}

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/packs/sell"

	sold := 0
	refunds := 0.0
	for i := 0; i < len(instanceIDs); i += config.SellEvery {
		resp, err := client.Post(ctx, url, config.UserID, map[string]string{"instanceId": instanceIDs[i]})
		if err != nil {
			return fmt.Errorf("quick-sell request failed: %w", err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return fmt.Errorf("quick-sell response read failed: %w", err)
		}
		if resp.StatusCode != statusOK {
			return fmt.Errorf("quick-sell failed with status %d", resp.StatusCode)
		}

		var sell quickSellResponse
		if err := json.Unmarshal(body, &sell); err != nil {
			return fmt.Errorf("quick-sell response parse failed: %w", err)
		}
		sold++
		refunds += sell.Refund
	}

	stats.InstancesSold = sold
	stats.RefundsCredited = refunds
	log.Printf("quick-sold %d instances for %.2f total", sold, refunds)
	return nil
}

// fetchBalance reads the collector's current balance.
func fetchBalance(ctx context.Context, config *Config) (float64, error) {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/balance", config.UserID)
	if err != nil {
		return 0, fmt.Errorf("balance request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return 0, fmt.Errorf("balance response read failed: %w", err)
	}
	if resp.StatusCode != statusOK {
		return 0, fmt.Errorf("balance request failed with status %d", resp.StatusCode)
	}

	var balance balanceResponse
	if err := json.Unmarshal(body, &balance); err != nil {
		return 0, fmt.Errorf("balance response parse failed: %w", err)
	}
	return balance.Balance, nil
}
