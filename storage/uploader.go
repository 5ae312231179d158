package storage

import (
	"context"
	"fmt"
	"image/jpeg"
	"io"
	"strconv"
	"time"

	gcs "cloud.google.com/go/storage"
)

const uploadTimeout = time.Second * 50

// Uploader relays an image to an external host and returns the stable
// public URL it ends up at.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string, t Transform) (string, error)
}

// GCSUploader stores normalized images in a Google Cloud Storage bucket.
type GCSUploader struct {
	cl        *gcs.Client
	projectID string
	bucket    string
}

// NewGCSUploader builds the uploader using ambient Google credentials.
func NewGCSUploader(ctx context.Context, projectID, bucket string) (*GCSUploader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}
	return &GCSUploader{cl: client, projectID: projectID, bucket: bucket}, nil
}

// Upload normalizes the image, writes it under folder with a timestamped
// object name and returns the public URL.
func (u *GCSUploader) Upload(ctx context.Context, file io.Reader, filename, folder string, t Transform) (string, error) {
	img, err := Normalize(file, t)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	objectPath := folder + "/" + timestamp + "_" + filename

	wc := u.cl.Bucket(u.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = "image/jpeg"
	if err := jpeg.Encode(wc, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		wc.Close()
		return "", fmt.Errorf("jpeg encode: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("Writer.Close: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectPath), nil
}

// Close releases the underlying storage client.
func (u *GCSUploader) Close() error {
	return u.cl.Close()
}
