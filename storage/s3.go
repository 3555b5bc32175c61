package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// maxPresignExpiry is the longest lifetime SigV4 accepts for a presigned url
const maxPresignExpiry = 7 * 24 * time.Hour

// S3Storage - storage adapter for S3 and S3 compatible services
type S3Storage struct {
	Session *session.Session
	S3      *s3.S3
	Bucket  string
}

// NewS3Storage - creates a new S3 storage adapter
func NewS3Storage(conf *Config) (*S3Storage, error) {
	if conf.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	awsConf := &aws.Config{
		Region: aws.String(conf.Region),
	}
	endpoint := conf.Endpoint
	if conf.Type == "wasabi" && endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.wasabisys.com", conf.Region)
	}
	if endpoint != "" {
		awsConf.Endpoint = aws.String(endpoint)
		awsConf.S3ForcePathStyle = aws.Bool(true)
	}
	if conf.AccessKeyID != "" {
		awsConf.Credentials = credentials.NewStaticCredentials(conf.AccessKeyID, conf.SecretAccessKey, "")
	}
	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, err
	}
	return &S3Storage{
		Session: sess,
		S3:      s3.New(sess),
		Bucket:  conf.Bucket,
	}, nil
}

// StoreFile uploads data under key
func (s *S3Storage) StoreFile(ctx context.Context, key string, data []byte, contentType string) error {
	uploader := s3manager.NewUploaderWithClient(s.S3)
	start := time.Now()
	_, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:             aws.String(s.Bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String("inline"),
	})
	if err != nil {
		return errors.Wrapf(err, "unable to upload %s", key)
	}
	logrus.WithFields(logrus.Fields{
		"key":      key,
		"bytes":    len(data),
		"duration": time.Since(start),
	}).Debug("file uploaded")
	return nil
}

// GetSignedURL presigns a GET of key; expiry is capped at seven days
func (s *S3Storage) GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 || expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}
	req, _ := s.S3.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)
	url, err := req.Presign(expiry)
	if err != nil {
		return "", errors.Wrapf(err, "unable to presign %s", key)
	}
	return url, nil
}
