package service

import (
	"context"
	"fmt"
	"regexp"
)

// BucketURLConfigKey is the configs-table key holding the bucket base URL.
const BucketURLConfigKey = "S3_BUCKET_URL"

// bucketNameRegexp matches virtual-hosted S3 URLs of the form
// https://<bucket>.s3.<region>.amazonaws.com/.
var bucketNameRegexp = regexp.MustCompile(`^https?://([^.]+)\.s3\.`)

// ExtractBucketName parses the bucket identifier out of a bucket base URL.
// The second return value is false when the URL does not match the expected
// shape.
func ExtractBucketName(url string) (string, bool) {
	m := bucketNameRegexp.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BucketBaseURL reads the bucket base URL from the configs table.
// A missing row yields an empty string, not an error.
func (s *Service) BucketBaseURL(ctx context.Context) (string, error) {
	return s.configDAO.GetValue(ctx, s.db, BucketURLConfigKey)
}

// resolveBucket derives the bucket name from the configured base URL.
// It fails when the config row is missing or the URL is malformed, which
// makes every storage call fail fast instead of writing to a wrong bucket.
func (s *Service) resolveBucket(ctx context.Context) (string, error) {
	baseURL, err := s.BucketBaseURL(ctx)
	if err != nil {
		return "", fmt.Errorf("read bucket base url: %w", err)
	}
	bucket, ok := ExtractBucketName(baseURL)
	if !ok {
		return "", fmt.Errorf("could not resolve bucket name from url %q", baseURL)
	}
	return bucket, nil
}
