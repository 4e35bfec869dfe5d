// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage holds the image stores: an S3-compatible bucket for
// production and a local directory for development. Both put uploads under
// a fixed folder, return a durable public URL, and accept that URL back as
// the handle for deletion.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"blogdesk/internal/imaging"
)

// ErrForeignURL is returned by Delete for a URL this store did not issue.
var ErrForeignURL = errors.New("url does not belong to this image store")

// ErrNoFolder is returned by the constructors for an empty image folder.
var ErrNoFolder = errors.New("image folder must not be empty")

// NewKey returns a fresh object key "<folder>/<uuid><ext>".
func NewKey(folder, ext string) string {
	return strings.Trim(folder, "/") + "/" + uuid.NewString() + ext
}

// S3 stores images in one bucket of an S3-compatible service, configured
// for path-style access (required by CEPH/Hetzner/MinIO).
type S3 struct {
	s3        *s3.Client
	bucket    string
	folder    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
}

// NewS3 creates an S3 image store. Returns (nil, nil) if endpoint or
// credentials are empty, so the caller can fall back to disk storage.
func NewS3(endpoint, region, accessKey, secretKey, bucket, publicURL, folder string) (*S3, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return nil, fmt.Errorf("s3: %w", ErrNoFolder)
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint = strings.TrimRight(endpoint, "/")

	client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &S3{
		s3:        client,
		bucket:    bucket,
		folder:    folder,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload stores img under a new key with public-read ACL and returns its URL.
func (c *S3) Upload(ctx context.Context, img *imaging.Image) (string, error) {
	key := NewKey(c.folder, img.Ext)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentLength: aws.Int64(img.Size()),
		ContentType:   aws.String(img.ContentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return c.FileURL(key), nil
}

// Delete removes the object behind a URL previously returned by Upload.
func (c *S3) Delete(ctx context.Context, rawURL string) error {
	key, ok := c.ExtractKey(rawURL)
	if !ok {
		return fmt.Errorf("s3 delete %q: %w", rawURL, ErrForeignURL)
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for key. Uses the configured public URL
// if set, otherwise builds a path-style URL.
func (c *S3) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ExtractKey derives the object key from a public file URL. Returns
// ("", false) if the URL does not point into this bucket's folder.
func (c *S3) ExtractKey(rawURL string) (string, bool) {
	var prefixes []string
	if c.publicURL != "" {
		prefixes = append(prefixes, c.publicURL+"/")
	}
	prefixes = append(prefixes, c.endpoint+"/"+c.bucket+"/")

	for _, prefix := range prefixes {
		if key, ok := strings.CutPrefix(rawURL, prefix); ok {
			return key, validKey(key, c.folder)
		}
	}
	return "", false
}

// validKey accepts only keys directly inside folder without traversal.
func validKey(key, folder string) bool {
	name, ok := strings.CutPrefix(key, strings.Trim(folder, "/")+"/")
	if !ok || name == "" {
		return false
	}
	return !strings.ContainsAny(name, "/\\") && name != "." && name != ".."
}

// Ping checks that the bucket is reachable with the configured credentials.
func (c *S3) Ping(ctx context.Context) error {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err != nil {
		return fmt.Errorf("s3 head bucket %s: %w", c.bucket, err)
	}
	return nil
}
