// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var errMissingBucket = errors.New("missing bucket or key")

// S3API is the part of the S3 client used by S3.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 is a vocabulary file stored as an S3 object.
type S3 struct {
	client S3API
	bucket string
	key    string
}

// NewS3 returns a new Source that reads the object bucket/key with client.
func NewS3(client S3API, bucket, key string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// OpenS3 returns a new S3 Source using the default AWS configuration (the
// environment, shared config files, and instance roles).
func OpenS3(ctx context.Context, bucket, key string) (*S3, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: s3://%s/%s", errMissingBucket, bucket, key)
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, key), nil
}

// ReadBytes implements table.Source.
func (s *S3) ReadBytes(ctx context.Context, position, length uint64) ([]byte, error) {
	if err := checkRange(position, length); err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}
	if length == 0 {
		return []byte{}, nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", position, position+length-1)),
	})
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", s, err)
	}
	defer out.Body.Close()

	// Allocation follows the bytes returned, not length.
	//nolint:gosec // length is bounds checked above.
	b, err := io.ReadAll(io.LimitReader(out.Body, int64(length)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}
	if uint64(len(b)) != length {
		return nil, fmt.Errorf("%s: %w", s, io.ErrUnexpectedEOF)
	}
	return b, nil
}

// Close implements io.Closer. The S3 client holds no resources.
func (s *S3) Close() error {
	return nil
}

// String returns the object URI.
func (s *S3) String() string {
	return "s3://" + s.bucket + "/" + s.key
}
