package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picboard/internal/config"
)

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestR2Store_Save(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newR2Store(api, "bucket", "https://cdn.example.com/")

	require.NoError(t, store.Save(context.Background(), "1.webp", "image/webp", []byte("RIFF")))

	require.Len(t, api.puts, 1)
	in := api.puts[0]
	assert.Equal(t, "bucket", aws.ToString(in.Bucket))
	assert.Equal(t, "posts/1.webp", aws.ToString(in.Key))
	assert.Equal(t, "image/webp", aws.ToString(in.ContentType))
	assert.Equal(t, "*", aws.ToString(in.IfNoneMatch))
	assert.Equal(t, []byte("RIFF"), api.bodies[0])
	assert.Equal(t, "https://cdn.example.com/posts/1.webp", store.URL("1.webp"))
}

func TestR2Store_Delete(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newR2Store(api, "bucket", "https://cdn.example.com")

	require.NoError(t, store.Delete(context.Background(), "1.webp"))
	require.Len(t, api.deletes, 1)
	assert.Equal(t, "posts/1.webp", aws.ToString(api.deletes[0].Key))

	assert.ErrorIs(t, store.Delete(context.Background(), "../1.webp"), ErrInvalidKey)
}

func TestR2Store_WrapsClientErrors(t *testing.T) {
	boom := errors.New("network down")
	store := newR2Store(&fakeObjectAPI{err: boom}, "bucket", "https://cdn.example.com")

	assert.ErrorIs(t, store.Save(context.Background(), "1.png", "image/png", nil), boom)
	assert.ErrorIs(t, store.Delete(context.Background(), "1.png"), boom)
}

func TestNewR2Store_RequiresConfig(t *testing.T) {
	_, err := NewR2Store(context.Background(), &config.Config{R2AccountID: "acc"})
	assert.Error(t, err)
}
