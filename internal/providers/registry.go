package providers

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// OCRProviderConfig is the config-level description of one provider
// instance.
type OCRProviderConfig struct {
	Type      string  // "mistral", "openai", "tesseract"
	Model     string  // model name, where applicable
	APIKey    string  // resolved API key (no ${ENV_VAR} references)
	RateLimit float64 // requests per second
	Enabled   bool
}

// RegistryConfig holds provider configs keyed by instance name.
type RegistryConfig struct {
	OCRProviders map[string]OCRProviderConfig
}

// Registry holds the instantiated OCR providers with their rate limiters.
// It supports config-driven instantiation and hot-reload and is safe for
// concurrent access.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]OCRProvider
	limiters  map[string]*RateLimiter
	logger    *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]OCRProvider),
		limiters:  make(map[string]*RateLimiter),
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers an OCR provider by name.
func (r *Registry) Register(name string, provider OCRProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
	r.limiters[name] = NewRateLimiter(provider.RequestsPerSecond())
	if r.logger != nil {
		r.logger.Info("registered OCR provider", "name", name, "type", provider.Name())
	}
}

// Unregister removes an OCR provider by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, name)
	delete(r.limiters, name)
	if r.logger != nil {
		r.logger.Info("unregistered OCR provider", "name", name)
	}
}

// Get returns a provider and its rate limiter by name.
func (r *Registry) Get(name string) (OCRProvider, *RateLimiter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[name]
	if !ok {
		return nil, nil, fmt.Errorf("OCR provider not found: %s", name)
	}
	return provider, r.limiters[name], nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyConfig instantiates providers from config, replacing the current
// set. Disabled entries and unknown types are skipped with a log line.
func (r *Registry) ApplyConfig(cfg RegistryConfig) {
	r.mu.Lock()
	logger := r.logger
	r.providers = make(map[string]OCRProvider)
	r.limiters = make(map[string]*RateLimiter)
	r.mu.Unlock()

	for name, pc := range cfg.OCRProviders {
		if !pc.Enabled {
			continue
		}
		provider, err := newProvider(pc)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping OCR provider", "name", name, "error", err)
			}
			continue
		}
		r.Register(name, provider)
	}
}

// newProvider constructs a provider instance from its config.
func newProvider(pc OCRProviderConfig) (OCRProvider, error) {
	switch pc.Type {
	case "mistral", "mistral-ocr":
		return NewMistralOCRClient(MistralOCRConfig{
			APIKey:    pc.APIKey,
			Model:     pc.Model,
			RateLimit: pc.RateLimit,
		}), nil
	case "openai":
		return NewOpenAIOCRClient(OpenAIOCRConfig{
			APIKey:    pc.APIKey,
			Model:     pc.Model,
			RateLimit: pc.RateLimit,
		}), nil
	case "tesseract":
		return NewTesseractClient(TesseractConfig{}), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider type: %q", pc.Type)
	}
}
