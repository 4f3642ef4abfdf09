package providers

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// ProcessWithRetry runs a provider's ProcessImage under its advertised
// retry policy with exponential backoff, waiting on the optional rate
// limiter before every attempt. Context cancellation is unrecoverable and
// stops the retry loop immediately.
func ProcessWithRetry(ctx context.Context, p OCRProvider, limiter *RateLimiter, image []byte, pageNum int) (*OCRResult, error) {
	attempts := p.MaxRetries()
	if attempts < 1 {
		attempts = 1
	}
	delay := p.RetryDelayBase()
	if delay <= 0 {
		delay = time.Second
	}

	var result *OCRResult
	var tries int

	err := retry.Do(
		func() error {
			tries++
			if err := limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			r, err := p.ProcessImage(ctx, image, pageNum)
			if err != nil {
				return err
			}
			result = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return &OCRResult{
			Success:      false,
			ErrorMessage: err.Error(),
			RetryCount:   tries - 1,
		}, err
	}

	result.RetryCount = tries - 1
	return result, nil
}
