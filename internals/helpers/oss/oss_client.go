// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"

	"cra_backend/internals/helpers/zlog"
)

var ErrObjectExists = errors.New("object already exists")

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // e.g. "history-backups/"
}

// NewOSSServiceFromEnv builds the client from ALI_OSS_*; prefix is prepended
// to every key written through Upload.
func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := normalizeEndpoint(getEnv("ALI_OSS_ENDPOINT"))
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 && se.Code == "AccessDenied" {
			zlog.Warn("[OSS] skip location check due to AccessDenied", zap.String("bucket", bucketName))
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		zlog.Info("[OSS] bucket ready", zap.String("bucket", bucketName), zap.String("location", loc))
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     normalizePrefix(prefix),
	}, nil
}

/* =======================================================================
   Upload
======================================================================= */

// Upload writes data under Prefix+key and refuses to replace an existing
// object. It returns the full object key.
func (s *OSSService) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	full := s.Prefix + strings.TrimLeft(key, "/")
	if err := s.UploadStream(ctx, full, bytes.NewReader(data), contentType, true); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 409 && se.Code == "FileAlreadyExists" {
			return "", fmt.Errorf("%w: %s", ErrObjectExists, full)
		}
		return "", err
	}
	return full, nil
}

func (s *OSSService) UploadStream(ctx context.Context, key string, r io.Reader, contentType string, forbidOverwrite bool) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("attachment"),
	}
	if forbidOverwrite {
		opts = append(opts, oss.ForbidOverWrite(true))
	}
	return s.Bucket.PutObject(key, r, opts...)
}

func (s *OSSService) DeleteObjects(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.Bucket.DeleteObjects(keys, oss.WithContext(ctx), oss.DeleteObjectsQuiet(true))
	return err
}

// SignedURL returns a time-limited GET URL for a private object.
func (s *OSSService) SignedURL(key string, expiresSec int64) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	if expiresSec <= 0 {
		expiresSec = 900
	}
	return s.Bucket.SignURL(key, oss.HTTPGet, expiresSec)
}

/* =======================================================================
   Key utils
======================================================================= */

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	return strings.TrimRight(ep, "/")
}

func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
