package llm_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resumeats/ats-analyzer/internal/llm"
	"resumeats/ats-analyzer/internal/llm/llmtest"
)

// Minimal PNG signature plus IHDR chunk header, enough for content sniffing.
var pngHeader = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
}

func newVisionGenerator(t *testing.T, provider llm.Provider, opts ...llm.Option) *llm.VisionGenerator {
	t.Helper()
	cfg, err := llm.NewVisionConfig(opts...)
	if err != nil {
		t.Fatalf("NewVisionConfig() error = %v", err)
	}
	return llm.NewVisionGenerator(cfg, provider, nil)
}

func TestVisionGenerateWithURLs(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: "a resume page"})
	gen := newVisionGenerator(t, provider, llm.WithFidelity(llm.FidelityHigh))

	result, err := gen.Generate(context.Background(), llm.VisionRequest{
		Request:   llm.Request{UserPrompt: "describe"},
		ImageURLs: []string{"https://example.com/a.png", "https://example.com/b.jpg"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Text() != "a resume page" {
		t.Errorf("Text() = %q", result.Text())
	}

	msg := provider.Payloads()[0].Messages[0]
	if len(msg.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(msg.Images))
	}
	for _, img := range msg.Images {
		if img.Detail != llm.FidelityHigh {
			t.Errorf("Detail = %q, want high", img.Detail)
		}
	}
}

func TestVisionGenerateInlineImage(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: `{"text": "John"}`})
	gen := newVisionGenerator(t, provider)

	result, err := gen.Generate(context.Background(), llm.VisionRequest{
		Request: llm.Request{UserPrompt: "read", JSONResponse: true},
		Images:  [][]byte{pngHeader},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, ok := result.Response.(map[string]any); !ok {
		t.Errorf("Response type = %T, want map", result.Response)
	}

	url := provider.Payloads()[0].Messages[0].Images[0].URL
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("URL = %q, want a PNG data URL", url)
	}
}

func TestVisionGenerateImageErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     llm.VisionRequest
		wantErr error
	}{
		{
			name:    "no images",
			req:     llm.VisionRequest{Request: llm.Request{UserPrompt: "describe"}},
			wantErr: llm.ErrMissingImages,
		},
		{
			name: "both sources",
			req: llm.VisionRequest{
				Request:   llm.Request{UserPrompt: "describe"},
				ImageURLs: []string{"https://example.com/a.png"},
				Images:    [][]byte{pngHeader},
			},
			wantErr: llm.ErrAmbiguousImages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := llmtest.NewScriptedProvider()
			gen := newVisionGenerator(t, provider)

			_, err := gen.Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if provider.Calls() != 0 {
				t.Errorf("provider called %d times, want 0", provider.Calls())
			}
		})
	}
}

func TestVisionGenerateAsync(t *testing.T) {
	provider := llmtest.NewScriptedProvider(llmtest.Reply{Content: "done"})
	gen := newVisionGenerator(t, provider)
	ctx := context.Background()

	completion, err := gen.GenerateRawAsync(ctx, llm.VisionRequest{
		Request:   llm.Request{UserPrompt: "describe"},
		ImageURLs: []string{"https://example.com/a.png"},
	}).Await(ctx)
	if err != nil {
		t.Fatalf("GenerateRawAsync() error = %v", err)
	}
	if completion.Content != "done" {
		t.Errorf("Content = %q, want done", completion.Content)
	}
}
