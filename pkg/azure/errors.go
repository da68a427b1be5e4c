package azure

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"amlsubmit/models"
)

// notFound wraps Azure 404 responses with models.ErrNotFound and leaves other errors untouched
func notFound(err error, kind, name string) error {
	if err == nil {
		return nil
	}

	var respError *azcore.ResponseError
	if errors.As(err, &respError) {
		if respError.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s %s: %w", kind, name, models.ErrNotFound)
		}
	}

	return err
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
