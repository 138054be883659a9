package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/domain"
)

// Deliver posts the final state of t. No-op without a callback URL.
func (d *implDispatcher) Deliver(ctx context.Context, t domain.Task) error {
	if t.CallbackURL == "" {
		return nil
	}
	return d.post(ctx, t.CallbackURL, taskPayload(t, d.now()))
}

// DeliverItem posts one item outcome. No-op without a callback URL.
func (d *implDispatcher) DeliverItem(ctx context.Context, taskID, url string, result *domain.ItemResult, itemErr *domain.ItemError) error {
	if url == "" {
		return nil
	}
	return d.post(ctx, url, itemPayload(taskID, result, itemErr, d.now()))
}

// post sends payload up to MaxAttempts times, waiting RetryBackoff between tries
func (d *implDispatcher) post(ctx context.Context, url string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &DeliveryError{URL: url, Err: fmt.Errorf("encode payload: %w", err)}
	}

	var lastErr error
	attempts := 0
	for attempts < d.cfg.MaxAttempts {
		if attempts > 0 {
			if err := wait(ctx, d.cfg.RetryBackoff); err != nil {
				lastErr = err
				break
			}
		}

		attempts++
		lastErr = d.send(ctx, url, body)
		if lastErr == nil {
			d.logger.Info(ctx, "Callback %s delivered to %s", payload.Event, url)
			return nil
		}
		d.logger.Warn(ctx, "Callback attempt %d/%d to %s failed: %v", attempts, d.cfg.MaxAttempts, url, lastErr)
	}

	err = &DeliveryError{URL: url, Attempts: attempts, Err: lastErr}
	d.logger.Error(ctx, "%v", err)
	return err
}

func (d *implDispatcher) send(ctx context.Context, url string, body []byte) error {
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
