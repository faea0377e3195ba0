package queries

import (
	"context"
	"errors"
	"testing"
)

type stubFetcher struct {
	contentType string
	err         error
	calls       int
}

func (f *stubFetcher) Head(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.contentType, f.err
}

func TestValidateProofURLAcceptedTypes(t *testing.T) {
	accepted := []string{
		"image/jpeg",
		"image/png; charset=binary",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	for _, contentType := range accepted {
		uc := ValidateProofURLUseCase{Fetcher: &stubFetcher{contentType: contentType}}
		if !uc.Execute(context.Background(), "https://proof.example.com/file") {
			t.Fatalf("content type %q should be accepted", contentType)
		}
	}
}

func TestValidateProofURLRejectedTypes(t *testing.T) {
	rejected := []string{"text/plain", "text/html; charset=utf-8", "application/zip", ""}
	for _, contentType := range rejected {
		uc := ValidateProofURLUseCase{Fetcher: &stubFetcher{contentType: contentType}}
		if uc.Execute(context.Background(), "https://proof.example.com/file") {
			t.Fatalf("content type %q should be rejected", contentType)
		}
	}
}

func TestValidateProofURLMalformed(t *testing.T) {
	fetcher := &stubFetcher{contentType: "image/jpeg"}
	uc := ValidateProofURLUseCase{Fetcher: fetcher}

	for _, raw := range []string{"", "   ", "not a url", "ftp://host/file.jpg", "/relative/path.jpg"} {
		if uc.Execute(context.Background(), raw) {
			t.Fatalf("url %q should be invalid", raw)
		}
	}
	if fetcher.calls != 0 {
		t.Fatalf("malformed urls must not reach the fetcher, got %d calls", fetcher.calls)
	}
}

func TestValidateProofURLUnreachable(t *testing.T) {
	uc := ValidateProofURLUseCase{Fetcher: &stubFetcher{err: errors.New("connection refused")}}
	if uc.Execute(context.Background(), "https://proof.example.com/file.jpg") {
		t.Fatal("unreachable url should be invalid")
	}
}

func TestValidateProofURLIdempotent(t *testing.T) {
	uc := ValidateProofURLUseCase{Fetcher: &stubFetcher{contentType: "application/pdf"}}
	first := uc.Execute(context.Background(), "https://proof.example.com/report.pdf")
	second := uc.Execute(context.Background(), "https://proof.example.com/report.pdf")
	if first != second {
		t.Fatal("validation verdict must be stable for the same input")
	}
}
