package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func fixedStore(p objectPutter, o S3Options) *S3ImageStore {
	return &S3ImageStore{client: p, opts: o, now: func() time.Time {
		return time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	}}
}

func TestS3ImageStore_Put(t *testing.T) {
	fp := &fakePutter{}
	store := fixedStore(fp, S3Options{Bucket: "avatars", Region: "eu-west-1", PublicURL: "https://cdn.example.com/"})

	url, err := store.Put(context.Background(), "me.PNG", "image/png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "avatars", aws.ToString(fp.in.Bucket))
	assert.Equal(t, "image/png", aws.ToString(fp.in.ContentType))
	assert.Equal(t, []byte("png-bytes"), fp.body)

	key := aws.ToString(fp.in.Key)
	assert.True(t, strings.HasPrefix(key, "images/2024/03/07/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestS3ImageStore_PutError(t *testing.T) {
	store := fixedStore(&fakePutter{err: errors.New("denied")}, S3Options{Bucket: "b"})
	_, err := store.Put(context.Background(), "a.jpg", "image/jpeg", bytes.NewReader(nil))
	assert.ErrorContains(t, err, "denied")
}

func TestS3ImageStore_URL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/b/k.png",
		fixedStore(nil, S3Options{Bucket: "b", Endpoint: "http://minio:9000/"}).URL("k.png"))
	assert.Equal(t, "https://b.s3.us-east-1.amazonaws.com/k.png",
		fixedStore(nil, S3Options{Bucket: "b", Region: "us-east-1"}).URL("k.png"))
}
