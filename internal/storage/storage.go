package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage persists presenter photos and returns a URL the app can render.
type Storage interface {
	SavePhoto(fileHeader *multipart.FileHeader, filename string) (string, error)
}

type LocalStorage struct {
	uploadDir string
	baseURL   string
}

type SpacesStorage struct {
	client *s3.S3
	bucket string
	cdnURL string
}

func NewLocalStorage(uploadDir, baseURL string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: strings.TrimSuffix(cdnURL, "/"),
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename produces a unique filename safe for URLs and object keys.
func normalizeFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	baseName := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))

	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = unsafeChars.ReplaceAllString(baseName, "")
	if baseName == "" {
		baseName = "photo"
	}

	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s%s", baseName, timestamp, ext)
}

func photoContentType(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".gif":
		return "image/gif", nil
	case ".webp":
		return "image/webp", nil
	}
	return "", fmt.Errorf("unsupported photo type %q", filepath.Ext(filename))
}

func (ls *LocalStorage) SavePhoto(fileHeader *multipart.FileHeader, filename string) (string, error) {
	if _, err := photoContentType(filename); err != nil {
		return "", err
	}

	normalized := normalizeFilename(filename)
	log.Debug().Str("original", filename).Str("normalized", normalized).Msg("photo upload normalized")

	if err := os.MkdirAll(ls.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(ls.uploadDir, normalized))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save photo: %w", err)
	}

	return ls.baseURL + "/uploads/" + normalized, nil
}

func (ss *SpacesStorage) SavePhoto(fileHeader *multipart.FileHeader, filename string) (string, error) {
	contentType, err := photoContentType(filename)
	if err != nil {
		return "", err
	}

	normalized := normalizeFilename(filename)
	log.Debug().Str("original", filename).Str("normalized", normalized).Msg("photo upload normalized")

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("uploads/presenters/%s", normalized)

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload photo to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return fmt.Sprintf("%s/%s", ss.cdnURL, key), nil
}
