package publish

import (
	"fmt"
	"regexp"
	"strings"
)

// Locator maps object keys to public URLs.
type Locator interface {
	BaseURL() string
	URL(key string) string
}

// S3Website addresses objects through the bucket's static website endpoint.
// The URL is derived from bucket and region, never from the store response.
type S3Website struct {
	Bucket string
	Region string
}

func (w S3Website) BaseURL() string {
	return fmt.Sprintf("http://%s.s3-website-%s.amazonaws.com/", w.Bucket, w.Region)
}

func (w S3Website) URL(key string) string {
	return w.BaseURL() + key
}

// BaseURL addresses objects under a fixed prefix (local preview server).
type BaseURL string

func (b BaseURL) BaseURL() string {
	return strings.TrimRight(string(b), "/") + "/"
}

func (b BaseURL) URL(key string) string {
	return b.BaseURL() + key
}

// whitespaceRun matches the ECMAScript whitespace set: ASCII spaces,
// vertical tab, Unicode space separators, line/paragraph separators and BOM.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// CategoryKey derives the per-category object key: lower-cased, each
// whitespace run collapsed to "-", with an .html extension. Leading and
// trailing runs are kept as "-".
func CategoryKey(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-") + ".html"
}
