package s3

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type countingGetter struct {
	calls atomic.Int32
}

func (g *countingGetter) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	g.calls.Add(1)
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(*in.Bucket + "/" + *in.Key))}, nil
}

func TestS3FileLoader_CachesObjects(t *testing.T) {
	getter := &countingGetter{}
	l := NewS3FileLoaderWithClient("reports", getter)

	files := l.Files([]string{"2024/acme.pdf", "2024/readme.md"})
	if len(files) != 1 {
		t.Fatalf("expected 1 pdf file, got %d", len(files))
	}

	for range 3 {
		data, err := files[0].GetBytes(context.Background())
		if err != nil {
			t.Fatalf("GetBytes() error = %v", err)
		}
		if string(data) != "reports/2024/acme.pdf" {
			t.Fatalf("unexpected content %q", data)
		}
	}
	if n := getter.calls.Load(); n != 1 {
		t.Fatalf("expected 1 GetObject call, got %d", n)
	}
	if files[0].Source() != "acme.pdf" {
		t.Fatalf("unexpected source %q", files[0].Source())
	}
}
