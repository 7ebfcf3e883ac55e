package storage

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

// Config describes the bucket and client.
type Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	Endpoint     string
	URLCacheSize int
	URLCacheTTL  time.Duration
}

// ObjectAPI is the subset of the S3 client the gateway uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Presigner creates presigned GET requests.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Gateway stores attachments in a private S3 bucket.
type Gateway struct {
	client    ObjectAPI
	presigner Presigner
	cfg       Config
	cache     *urlCache
	logger    *zap.Logger
	now       func() time.Time
}

// NewS3Client builds an S3 client. Static credentials are used when both
// keys are set, otherwise the default chain applies. A custom endpoint
// switches to path-style addressing for S3-compatible stores.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewGateway wires a gateway around an S3 client.
func NewGateway(client *s3.Client, cfg Config, logger *zap.Logger) *Gateway {
	return NewGatewayWithAPI(client, s3.NewPresignClient(client), cfg, logger)
}

// NewGatewayWithAPI accepts any client implementation.
func NewGatewayWithAPI(client ObjectAPI, presigner Presigner, cfg Config, logger *zap.Logger) *Gateway {
	if cfg.URLCacheSize <= 0 {
		cfg.URLCacheSize = 1024
	}
	if cfg.URLCacheTTL <= 0 || cfg.URLCacheTTL >= entity.SignedURLTTL {
		cfg.URLCacheTTL = 50 * time.Minute
	}
	return &Gateway{
		client:    client,
		presigner: presigner,
		cfg:       cfg,
		cache:     newURLCache(cfg.URLCacheSize, cfg.URLCacheTTL),
		logger:    logger,
		now:       time.Now,
	}
}

// ObjectKey builds {documentType}/{businessArea}/{recordId_}{unixMillis}_{name}.
func ObjectKey(documentType, businessArea string, recordID *uint, at time.Time, fileName string) string {
	var b strings.Builder
	b.WriteString(areaPrefix(documentType, businessArea))
	if recordID != nil {
		b.WriteString(strconv.FormatUint(uint64(*recordID), 10))
		b.WriteByte('_')
	}
	b.WriteString(strconv.FormatInt(at.UnixMilli(), 10))
	b.WriteByte('_')
	b.WriteString(SanitizeFileName(fileName))
	return b.String()
}

func areaPrefix(documentType, businessArea string) string {
	return SanitizeFileName(documentType) + "/" + SanitizeFileName(businessArea) + "/"
}

// AreaPrefix returns the leading part ObjectKey gives every key of
// documentType in businessArea.
func (g *Gateway) AreaPrefix(documentType, businessArea string) string {
	return areaPrefix(documentType, businessArea)
}

// KeyPrefix returns the first segment of an object key.
func KeyPrefix(key string) string {
	prefix, _, _ := strings.Cut(key, "/")
	return prefix
}

// Upload writes the object with a private ACL.
func (g *Gateway) Upload(ctx context.Context, in entity.FileUpload) (*entity.StoredFile, error) {
	key := ObjectKey(in.DocumentType, in.BusinessArea, in.RecordID, g.now(), in.FileName)

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(key),
		Body:        in.Body,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPrivate,
	}
	if in.Size > 0 {
		putInput.ContentLength = aws.Int64(in.Size)
	}

	if _, err := g.client.PutObject(ctx, putInput); err != nil {
		return nil, fmt.Errorf("failed to upload file to s3: %w", err)
	}

	g.logger.Debug("Object uploaded", zap.String("key", key), zap.Int64("size", in.Size))

	return &entity.StoredFile{
		Key:         key,
		URL:         g.objectURL(key),
		FileName:    in.FileName,
		FileSize:    in.Size,
		ContentType: contentType,
	}, nil
}

// SignedURL presigns a GET for key, reusing a cached URL when one exists.
func (g *Gateway) SignedURL(ctx context.Context, key string) (string, time.Time, error) {
	if v, ok := g.cache.get(key); ok {
		return v.url, v.expiresAt, nil
	}

	issuedAt := g.now()
	req, err := g.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(entity.SignedURLTTL))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	v := signedURL{url: req.URL, expiresAt: issuedAt.Add(entity.SignedURLTTL)}
	g.cache.add(key, v)
	return v.url, v.expiresAt, nil
}

// Delete removes the object and any cached URL for it.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	g.cache.remove(key)
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from s3: %w", err)
	}
	return nil
}

func (g *Gateway) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if g.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(g.cfg.Endpoint, "/"), g.cfg.Bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", g.cfg.Bucket, g.cfg.Region, escaped)
}
