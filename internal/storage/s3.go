package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/NavalhaLabs/navalha-agenda/internal/config"
)

const (
	avatarMaxDim      = 512
	avatarWebPQuality = 82
)

// MediaStore guarda imagens de perfil dos barbeiros num bucket S3,
// sempre reencodadas em webp.
type MediaStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewMediaStore(cfg *config.Config) *MediaStore {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	}

	// endpoint custom para MinIO/localstack em dev
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &MediaStore{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
	}
}

// UploadAvatar reduz a imagem para no máximo 512px, converte para webp e
// sobe para o bucket. Retorna a URL pública do objeto.
func (m *MediaStore) UploadAvatar(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	img image.Image,
) (string, error) {

	resized := downscale(img, avatarMaxDim)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: avatarWebPQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	objectKey := fmt.Sprintf("shops/%d/barbers/%d/avatar.webp", barbershopID, barberID)

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(m.bucket),
		Key:          aws.String(objectKey),
		Body:         bytes.NewReader(buf.Bytes()),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return m.objectURL(objectKey), nil
}

func (m *MediaStore) objectURL(objectKey string) string {
	if m.publicURL != "" {
		return fmt.Sprintf("%s/%s", m.publicURL, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", m.bucket, objectKey)
}

func downscale(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	if w > h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
