package llm

import (
	"fmt"
)

const (
	// DefaultSeed keeps sampling reproducible across runs.
	DefaultSeed        = 10
	DefaultTemperature = 0.3

	DefaultTextModel   = GPT4oMini
	DefaultVisionModel = GPT41
)

// Fidelity is the detail level requested for images in vision calls.
type Fidelity string

const (
	FidelityLow  Fidelity = "low"
	FidelityHigh Fidelity = "high"
)

// Sampling holds the generation parameters shared by text and vision configs.
// Nil pointers mean "not sent to the provider".
type Sampling struct {
	Temperature      float32
	Seed             int
	TopP             *float32
	FrequencyPenalty *float32
	PresencePenalty  *float32
	MaxTokens        *int
}

// TextConfig configures a TextGenerator. Build it with NewTextConfig.
type TextConfig struct {
	Model Model
	Sampling
}

// VisionConfig configures a VisionGenerator. Build it with NewVisionConfig.
type VisionConfig struct {
	Model    Model
	Fidelity Fidelity
	Sampling
}

type options struct {
	model    Model
	fidelity Fidelity
	sampling Sampling
}

// Option customises a generation config.
type Option func(*options)

func WithModel(m Model) Option {
	return func(o *options) { o.model = m }
}

func WithTemperature(t float32) Option {
	return func(o *options) { o.sampling.Temperature = t }
}

func WithSeed(seed int) Option {
	return func(o *options) { o.sampling.Seed = seed }
}

func WithTopP(p float32) Option {
	return func(o *options) { o.sampling.TopP = &p }
}

func WithFrequencyPenalty(p float32) Option {
	return func(o *options) { o.sampling.FrequencyPenalty = &p }
}

func WithPresencePenalty(p float32) Option {
	return func(o *options) { o.sampling.PresencePenalty = &p }
}

func WithMaxTokens(n int) Option {
	return func(o *options) { o.sampling.MaxTokens = &n }
}

// WithFidelity only affects vision configs.
func WithFidelity(f Fidelity) Option {
	return func(o *options) { o.fidelity = f }
}

func defaultOptions(model Model) *options {
	return &options{
		model:    model,
		fidelity: FidelityLow,
		sampling: Sampling{
			Temperature: DefaultTemperature,
			Seed:        DefaultSeed,
		},
	}
}

// NewTextConfig validates and returns a text generation config.
func NewTextConfig(opts ...Option) (TextConfig, error) {
	o := defaultOptions(DefaultTextModel)
	for _, opt := range opts {
		opt(o)
	}
	if err := validateModel(o.model); err != nil {
		return TextConfig{}, err
	}
	if err := validateSampling(o.sampling); err != nil {
		return TextConfig{}, err
	}
	return TextConfig{Model: o.model, Sampling: o.sampling}, nil
}

// NewVisionConfig validates and returns a vision generation config.
func NewVisionConfig(opts ...Option) (VisionConfig, error) {
	o := defaultOptions(DefaultVisionModel)
	for _, opt := range opts {
		opt(o)
	}
	if o.fidelity != FidelityLow && o.fidelity != FidelityHigh {
		return VisionConfig{}, fmt.Errorf("%w: got %q", ErrInvalidFidelity, o.fidelity)
	}
	if err := validateModel(o.model); err != nil {
		return VisionConfig{}, err
	}
	if err := validateSampling(o.sampling); err != nil {
		return VisionConfig{}, err
	}
	return VisionConfig{Model: o.model, Fidelity: o.fidelity, Sampling: o.sampling}, nil
}

func validateModel(m Model) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q selected", ErrInvalidModel, m)
	}
	return nil
}

func validateSampling(s Sampling) error {
	if s.MaxTokens != nil && *s.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidParameter, *s.MaxTokens)
	}
	if s.TopP != nil && (*s.TopP < 0 || *s.TopP > 1) {
		return fmt.Errorf("%w: top_p must be within [0, 1], got %v", ErrInvalidParameter, *s.TopP)
	}
	return nil
}
