package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadPrefix is the key prefix every uploaded object lives under.
const UploadPrefix = "uploads/"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Object describes a stored upload.
type Object struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

// putter is the part of the S3 client used here.
type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	bucket  string
	baseURL string
	client  putter
	now     func() time.Time
}

// NewS3Uploader loads the default AWS credential chain for region. baseURL,
// when set, replaces the bucket's own public URL in returned links.
func NewS3Uploader(ctx context.Context, bucket, region, baseURL string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is not set")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return newS3Uploader(bucket, baseURL, s3.NewFromConfig(cfg)), nil
}

func newS3Uploader(bucket, baseURL string, client putter) *S3Uploader {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3Uploader{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/"), client: client, now: time.Now}
}

// Upload stores body under a timestamped key derived from filename.
func (u *S3Uploader) Upload(ctx context.Context, filename, contentType string, body []byte) (Object, error) {
	key := u.objectKey(filename)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return Object{}, fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return Object{URL: u.baseURL + "/" + key, Pathname: key}, nil
}

func (u *S3Uploader) objectKey(filename string) string {
	return fmt.Sprintf("%s%d-%s", UploadPrefix, u.now().UnixNano(), CleanFilename(filename))
}

// CleanFilename keeps only the base name and replaces characters that are
// awkward in URLs.
func CleanFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	cleaned := strings.Trim(unsafeNameChars.ReplaceAllString(base, "-"), "-.")
	if cleaned == "" {
		return "arquivo"
	}
	return cleaned
}
