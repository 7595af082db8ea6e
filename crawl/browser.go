package crawl

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/cassdoc"
)

// OpenBrowser launches the first backend that starts, trying them in order.
// Each failed backend is reported through progress before the next one is
// tried. If every backend fails the error has code EUNAVAILABLE and wraps
// each launch error.
func OpenBrowser(ctx context.Context, backends []cassdoc.Backend, progress ProgressFunc) (cassdoc.Browser, string, error) {
	if len(backends) == 0 {
		return nil, "", cassdoc.Errorf(cassdoc.EINVALID, "no browser backends configured")
	}

	var errs []error
	for _, backend := range backends {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		browser, err := backend.Launch(ctx)
		if err == nil {
			return browser, backend.Name, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", backend.Name, err))
		if progress != nil {
			progress(ProgressEvent{
				Type:    ProgressBackendFailed,
				Backend: backend.Name,
				Error:   err,
			})
		}
	}

	return nil, "", fmt.Errorf("%w: %w",
		cassdoc.Errorf(cassdoc.EUNAVAILABLE, "no browser backend could be started"),
		errors.Join(errs...),
	)
}
