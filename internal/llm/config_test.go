package llm_test

import (
	"errors"
	"testing"

	"resumeats/ats-analyzer/internal/llm"
)

func TestNewTextConfigDefaults(t *testing.T) {
	cfg, err := llm.NewTextConfig()
	if err != nil {
		t.Fatalf("NewTextConfig() error = %v", err)
	}
	if cfg.Model != llm.GPT4oMini {
		t.Errorf("Model = %q, want %q", cfg.Model, llm.GPT4oMini)
	}
	if cfg.Seed != llm.DefaultSeed {
		t.Errorf("Seed = %d, want %d", cfg.Seed, llm.DefaultSeed)
	}
	if cfg.Temperature != llm.DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", cfg.Temperature, llm.DefaultTemperature)
	}
	if cfg.TopP != nil || cfg.MaxTokens != nil {
		t.Errorf("optional sampling fields should be unset, got %+v", cfg.Sampling)
	}
}

func TestNewVisionConfigDefaults(t *testing.T) {
	cfg, err := llm.NewVisionConfig()
	if err != nil {
		t.Fatalf("NewVisionConfig() error = %v", err)
	}
	if cfg.Model != llm.GPT41 {
		t.Errorf("Model = %q, want %q", cfg.Model, llm.GPT41)
	}
	if cfg.Fidelity != llm.FidelityLow {
		t.Errorf("Fidelity = %q, want %q", cfg.Fidelity, llm.FidelityLow)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		wantErr error
	}{
		{
			name: "unknown text model",
			build: func() error {
				_, err := llm.NewTextConfig(llm.WithModel("gpt-9"))
				return err
			},
			wantErr: llm.ErrInvalidModel,
		},
		{
			name: "unknown vision model",
			build: func() error {
				_, err := llm.NewVisionConfig(llm.WithModel("claude"))
				return err
			},
			wantErr: llm.ErrInvalidModel,
		},
		{
			name: "medium fidelity",
			build: func() error {
				_, err := llm.NewVisionConfig(llm.WithFidelity("medium"))
				return err
			},
			wantErr: llm.ErrInvalidFidelity,
		},
		{
			name: "zero max tokens",
			build: func() error {
				_, err := llm.NewTextConfig(llm.WithMaxTokens(0))
				return err
			},
			wantErr: llm.ErrInvalidParameter,
		},
		{
			name: "top p above one",
			build: func() error {
				_, err := llm.NewTextConfig(llm.WithTopP(1.5))
				return err
			},
			wantErr: llm.ErrInvalidParameter,
		},
		{
			name: "gemini model with overrides",
			build: func() error {
				_, err := llm.NewTextConfig(
					llm.WithModel(llm.Gemini25Flash),
					llm.WithTemperature(0.7),
					llm.WithSeed(42),
					llm.WithMaxTokens(512),
				)
				return err
			},
		},
		{
			name: "high fidelity",
			build: func() error {
				_, err := llm.NewVisionConfig(llm.WithFidelity(llm.FidelityHigh))
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseModel(t *testing.T) {
	m, err := llm.ParseModel(" gemini-2.5-pro ")
	if err != nil {
		t.Fatalf("ParseModel() error = %v", err)
	}
	if m != llm.Gemini25Pro || m.Family() != llm.FamilyGemini {
		t.Errorf("got %q (%s), want gemini-2.5-pro (gemini)", m, m.Family())
	}
	if llm.GPT4o.Family() != llm.FamilyOpenAI {
		t.Errorf("gpt-4o family = %s, want openai", llm.GPT4o.Family())
	}

	if _, err := llm.ParseModel("text-davinci-003"); !errors.Is(err, llm.ErrInvalidModel) {
		t.Errorf("ParseModel(unknown) error = %v, want ErrInvalidModel", err)
	}
}
