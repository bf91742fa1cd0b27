package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Konstantin-Kleinikov/foodgram/internal/utils"
)

var ErrInvalidImageFormat = errors.New("invalid image format")

// AllowImage lists the content types accepted for avatar and recipe
// image uploads.
var AllowImage = []string{"image/jpeg", "image/png", "image/gif"}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

type AwsS3 struct {
	client *s3.Client
	bucket string
	region string
}

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("error loading AWS config: %v", err)
	}

	return AwsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

// UploadBase64 stores a base64-encoded image (raw or data-URI form) under
// folder and returns the object key.
func (a AwsS3) UploadBase64(ctx context.Context, fileName, encoded, folder string, allowTypes ...string) (string, error) {
	contentType, payload, err := decodeBase64Image(encoded)
	if err != nil {
		return "", err
	}
	if len(allowTypes) == 0 {
		allowTypes = AllowImage
	}
	if !contains(allowTypes, contentType) {
		return "", ErrInvalidImageFormat
	}

	objectKey := fmt.Sprintf(
		"%s/%s-%s%s",
		folder, fileName, uuid.New().String()[:8], imageExtensions[contentType],
	)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a AwsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a AwsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a AwsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

// decodeBase64Image accepts either a "data:image/...;base64,..." URI or a
// bare base64 payload (treated as jpeg).
func decodeBase64Image(encoded string) (string, []byte, error) {
	contentType := "image/jpeg"
	if strings.HasPrefix(encoded, "data:") {
		parts := strings.SplitN(encoded, ";base64,", 2)
		if len(parts) != 2 {
			return "", nil, ErrInvalidImageFormat
		}
		contentType = strings.TrimPrefix(parts[0], "data:")
		encoded = parts[1]
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, ErrInvalidImageFormat
	}
	return contentType, payload, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
