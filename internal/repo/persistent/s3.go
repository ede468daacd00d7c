package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/YanPetrov7/blog-content-management-system/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

// ObjectStoreRepo keeps media variants in an S3-compatible store. Object ids
// are store keys of the form "<folder>/<uuid>"; URLs are public path-style
// URLs under the configured base.
type ObjectStoreRepo struct {
	*s3client.S3Client
	bucket    string
	publicURL string
}

func NewObjectStoreRepo(s3c *s3client.S3Client, bucket, publicURL string) *ObjectStoreRepo {
	return &ObjectStoreRepo{
		S3Client:  s3c,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (r *ObjectStoreRepo) PutBytes(ctx context.Context, folder string, data []byte, contentType string) (string, error) {
	objectID := fmt.Sprintf("%s/%s", folder, uuid.New())

	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(objectID),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("ObjectStoreRepo - PutBytes - r.Client.PutObject: %w", err)
	}

	return objectID, nil
}

func (r *ObjectStoreRepo) URL(objectID string) string {
	return r.publicURL + "/" + objectID
}

// Delete removes the object and reports whether it existed. An unknown id is
// not an error: cleanup paths retry deletes and may run on already-removed ids.
func (r *ObjectStoreRepo) Delete(ctx context.Context, objectID string) (bool, error) {
	_, err := r.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectID),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("ObjectStoreRepo - Delete - r.Client.HeadObject: %w", err)
	}

	_, err = r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectID),
	})
	if err != nil {
		return false, fmt.Errorf("ObjectStoreRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return true, nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}
