package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/diillson/op-bridge-go/internal/domain/repository"
	"github.com/diillson/op-bridge-go/internal/shared/types"
)

// objectPutter é o subconjunto do cliente S3 usado aqui.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl implementa o StorageRepository com um cliente S3
// criado sob demanda para o profile configurado.
type S3RepositoryImpl struct {
	profile string

	mu     sync.Mutex
	client objectPutter
}

// NewS3Repository cria o repositório. Um profile vazio usa a cadeia de
// credenciais padrão do SDK.
func NewS3Repository(profile string) repository.StorageRepository {
	return &S3RepositoryImpl{profile: profile}
}

func (r *S3RepositoryImpl) getClient(ctx context.Context) (objectPutter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config for profile %q: %v", types.ErrStorageUnavailable, r.profile, err)
	}

	r.client = s3.NewFromConfig(cfg)
	return r.client, nil
}

// Upload envia o arquivo local para s3://bucket/key e devolve a URI.
func (r *S3RepositoryImpl) Upload(ctx context.Context, bucket, key, localPath string) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("%w: bucket not set", types.ErrStorageUnavailable)
	}

	client, err := r.getClient(ctx)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", localPath, err)
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading %s to bucket %s: %w", filepath.Base(localPath), bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
