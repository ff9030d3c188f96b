package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/op-bridge-go/internal/shared/types"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0644))

	fake := &fakePutter{}
	repo := &S3RepositoryImpl{client: fake}

	uri, err := repo.Upload(context.Background(), "my-bucket", "r/x/bridge.json", path)
	require.NoError(t, err)
	assert.Equal(t, "s3://my-bucket/r/x/bridge.json", uri)
	assert.Equal(t, "my-bucket", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "r/x/bridge.json", aws.ToString(fake.input.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.Equal(t, `{"id":"x"}`, string(fake.body))
}

func TestUpload_Errors(t *testing.T) {
	repo := &S3RepositoryImpl{client: &fakePutter{err: errors.New("access denied")}}

	_, err := repo.Upload(context.Background(), "", "k", "f")
	assert.ErrorIs(t, err, types.ErrStorageUnavailable)

	_, err = repo.Upload(context.Background(), "b", "k", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bridge.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b"), 0644))
	_, err = repo.Upload(context.Background(), "b", "k", path)
	assert.ErrorContains(t, err, "access denied")
}
