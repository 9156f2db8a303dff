package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
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

func TestUpload(t *testing.T) {
	put := &fakePutter{}
	u := &S3Uploader{client: put, cfg: S3Config{Bucket: "ads", PublicURL: "https://cdn.example.com/"}}

	url, err := u.Upload(context.Background(), "broadcasts", ".jpg", "image/jpeg", []byte("img"))
	if err != nil {
		t.Fatal(err)
	}

	key := aws.ToString(put.in.Key)
	if !strings.HasPrefix(key, "broadcasts/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}
	if aws.ToString(put.in.Bucket) != "ads" || aws.ToString(put.in.ContentType) != "image/jpeg" {
		t.Fatalf("unexpected input %+v", put.in)
	}
	if string(put.body) != "img" {
		t.Fatalf("unexpected body %q", put.body)
	}
	if url != "https://cdn.example.com/"+key {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestUploadError(t *testing.T) {
	u := &S3Uploader{client: &fakePutter{err: errors.New("denied")}, cfg: S3Config{Bucket: "ads"}}
	if _, err := u.Upload(context.Background(), "p", ".jpg", "image/jpeg", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestURL(t *testing.T) {
	cases := []struct {
		cfg  S3Config
		want string
	}{
		{S3Config{Bucket: "ads", PublicURL: "https://cdn.example.com"}, "https://cdn.example.com/a.jpg"},
		{S3Config{Bucket: "ads", Endpoint: "http://minio:9000/"}, "http://minio:9000/ads/a.jpg"},
		{S3Config{Bucket: "ads", Region: "eu-central-1"}, "https://ads.s3.eu-central-1.amazonaws.com/a.jpg"},
	}
	for _, tc := range cases {
		if got := (&S3Uploader{cfg: tc.cfg}).URL("a.jpg"); got != tc.want {
			t.Errorf("URL = %q, want %q", got, tc.want)
		}
	}
}
