package s3store

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ynabviz/internal/blob"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []*s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, _ := io.ReadAll(in.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPutSendsObject(t *testing.T) {
	api := &fakeAPI{}
	store := New(api, "viz-bucket", WithPublicRead(true))

	err := store.Put(context.Background(), blob.Object{Key: "dashboard.html", Body: []byte("<html></html>"), ContentType: "text/html"})
	require.NoError(t, err)
	require.Len(t, api.calls, 1)

	in := api.calls[0]
	assert.Equal(t, "viz-bucket", aws.ToString(in.Bucket))
	assert.Equal(t, "dashboard.html", aws.ToString(in.Key))
	assert.Equal(t, "text/html", aws.ToString(in.ContentType))
	assert.Equal(t, types.ObjectCannedACLPublicRead, in.ACL)
	assert.Equal(t, "<html></html>", api.body)
	assert.Equal(t, "viz-bucket", store.Bucket())
}

func TestPutWithoutACL(t *testing.T) {
	api := &fakeAPI{}
	store := New(api, "viz-bucket")
	require.NoError(t, store.Put(context.Background(), blob.Object{Key: "a.html"}))
	assert.Empty(t, api.calls[0].ACL)
}

func TestPutWrapsErrors(t *testing.T) {
	boom := errors.New("access denied")
	store := New(&fakeAPI{err: boom}, "viz-bucket")
	err := store.Put(context.Background(), blob.Object{Key: "a.html"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s3://viz-bucket/a.html")

	err = New(nil, "b").Put(context.Background(), blob.Object{Key: "a.html"})
	assert.Error(t, err)
}
