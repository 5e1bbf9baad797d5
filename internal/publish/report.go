package publish

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey marks a document whose key was already claimed by an
// earlier document of the same publish call. It is never uploaded.
var ErrDuplicateKey = errors.New("duplicate object key")

// ItemResult is the outcome of one upload.
type ItemResult struct {
	Key      string
	Category string
	URL      string
	Err      error
}

// Report collects the outcome of every upload of one publish call.
// Uploads that succeeded stay written even when others failed.
type Report struct {
	Mode  Mode
	Items []ItemResult
	// Filtered counts categories skipped for having no budget.
	Filtered int
}

// URLs returns the URLs of successful uploads in item order.
func (r Report) URLs() []string {
	urls := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Err == nil {
			urls = append(urls, it.URL)
		}
	}
	return urls
}

// Failed returns the items whose upload failed.
func (r Report) Failed() []ItemResult {
	var out []ItemResult
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}

// Succeeded counts successful uploads.
func (r Report) Succeeded() int {
	return len(r.Items) - len(r.Failed())
}

// Err joins every failure, each prefixed with its key. Nil when all succeeded.
func (r Report) Err() error {
	var errs []error
	for _, it := range r.Failed() {
		errs = append(errs, fmt.Errorf("upload %s: %w", it.Key, it.Err))
	}
	return errors.Join(errs...)
}
