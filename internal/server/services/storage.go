package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	sc "github.com/tokomonggo/server/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// StorageService hands out presigned PUT URLs so clients upload images
// straight to object storage, and resolves stored keys to public URLs.
type StorageService struct {
	config *sc.Config
}

func NewStorageService(config *sc.Config) *StorageService {
	return &StorageService{config: config}
}

// RandomStorageKey namespaces object keys per owner so a user can only ever
// collide with their own uploads.
func RandomStorageKey(userID string) string {
	return fmt.Sprintf("%s/%v", userID, uuid.New())
}

func (s *StorageService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *StorageService) presignPut(ctx context.Context, bucket, userID string) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	key := RandomStorageKey(userID)

	// Presigned PUT
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignListingUpload returns a fresh key in the listings bucket and a URL
// the client can PUT the image to.
func (s *StorageService) PresignListingUpload(ctx context.Context, userID string) (string, string, error) {
	return s.presignPut(ctx, s.config.S3ListingsBucket, userID)
}

// PresignAvatarUpload is the same flow for profile pictures.
func (s *StorageService) PresignAvatarUpload(ctx context.Context, userID string) (string, string, error) {
	return s.presignPut(ctx, s.config.S3AvatarsBucket, userID)
}

// ListingImageURL resolves a stored image reference to a browsable URL.
// Absolute URLs (external images, generated avatars) pass through untouched.
func (s *StorageService) ListingImageURL(key string) string {
	return s.publicURL(s.config.S3ListingsBucket, key)
}

// AvatarURL resolves an avatar reference the same way against the avatars
// bucket.
func (s *StorageService) AvatarURL(key string) string {
	return s.publicURL(s.config.S3AvatarsBucket, key)
}

func (s *StorageService) publicURL(bucket, key string) string {
	if strings.HasPrefix(key, "http") {
		return key
	}
	base := strings.TrimRight(s.config.PublicStorageBaseURL, "/")
	return base + "/" + path.Join(bucket, key)
}
