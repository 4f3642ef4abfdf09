package config

// Config holds citydir configuration.
// Stored at: ~/.citydir/config.yaml
type Config struct {
	OCRProviders map[string]OCRProviderCfg `mapstructure:"ocr_providers" yaml:"ocr_providers"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
	Segmentation SegmentationCfg           `mapstructure:"segmentation" yaml:"segmentation"`
	Extraction   ExtractionCfg             `mapstructure:"extraction" yaml:"extraction"`
	Preprocess   PreprocessCfg             `mapstructure:"preprocess" yaml:"preprocess"`
}

// OCRProviderCfg configures an OCR provider.
type OCRProviderCfg struct {
	Type      string  `mapstructure:"type" yaml:"type"`             // "mistral", "openai", "tesseract"
	Model     string  `mapstructure:"model" yaml:"model,omitempty"` // Model name (for openai)
	APIKey    string  `mapstructure:"api_key" yaml:"api_key"`       // API key (supports ${ENV_VAR} syntax)
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per second
	Enabled   bool    `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default selections for processing runs.
type DefaultsCfg struct {
	OCRProviders []string `mapstructure:"ocr_providers" yaml:"ocr_providers"` // Ordered OCR provider preference
	MaxWorkers   int      `mapstructure:"max_workers" yaml:"max_workers"`     // Max concurrent page workers
	ExportFormat string   `mapstructure:"export_format" yaml:"export_format"` // csv, jsonl, or yaml
}

// SegmentationCfg tunes line classification. Empty lists fall back to the
// built-in defaults.
type SegmentationCfg struct {
	NoisePatterns []string `mapstructure:"noise_patterns" yaml:"noise_patterns,omitempty"` // Regexes for separator/garble lines
	PageTitles    []string `mapstructure:"page_titles" yaml:"page_titles,omitempty"`       // Literal running titles to drop
}

// ExtractionCfg tunes field extraction.
type ExtractionCfg struct {
	// OccupationVocabulary lists known occupation terms. Multi-word terms
	// are matched whole.
	OccupationVocabulary []string `mapstructure:"occupation_vocabulary" yaml:"occupation_vocabulary"`

	// MinLineConfidence drops hOCR lines below this mean word confidence
	// (0 keeps everything).
	MinLineConfidence float64 `mapstructure:"min_line_confidence" yaml:"min_line_confidence"`
}

// PreprocessCfg tunes page image preparation before OCR.
type PreprocessCfg struct {
	SkipBinarize bool    `mapstructure:"skip_binarize" yaml:"skip_binarize"`
	ScaleFactor  float64 `mapstructure:"scale_factor" yaml:"scale_factor"` // 0 or 1 keeps original size
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OCRProviders: map[string]OCRProviderCfg{
			"mistral": {
				Type:      "mistral",
				APIKey:    "${MISTRAL_API_KEY}",
				RateLimit: 6.0,
				Enabled:   true,
			},
			"openai": {
				Type:      "openai",
				Model:     "gpt-4o-mini",
				APIKey:    "${OPENAI_API_KEY}",
				RateLimit: 2.0,
				Enabled:   false,
			},
			"tesseract": {
				Type:    "tesseract",
				Enabled: true,
			},
		},
		Defaults: DefaultsCfg{
			OCRProviders: []string{"mistral", "tesseract"},
			MaxWorkers:   10,
			ExportFormat: "csv",
		},
		Extraction: ExtractionCfg{
			OccupationVocabulary: []string{
				"laborer", "carpenter", "clerk", "teamster", "blacksmith",
				"machinist", "engineer", "printer", "painter", "mason",
				"tailor", "shoemaker", "butcher", "baker", "cooper",
				"millwright", "sawyer", "bookkeeper", "salesman", "agent",
				"physician", "lawyer", "teacher", "domestic", "dressmaker",
				"seamstress", "midwife", "carriage maker", "harness maker",
				"saloon keeper", "boarding house keeper",
			},
		},
	}
}

// GetOCRProvider returns an OCR provider config by name.
func (c *Config) GetOCRProvider(name string) (OCRProviderCfg, bool) {
	cfg, ok := c.OCRProviders[name]
	return cfg, ok
}

// EnabledOCRProviders returns all enabled OCR providers.
func (c *Config) EnabledOCRProviders() map[string]OCRProviderCfg {
	result := make(map[string]OCRProviderCfg)
	for name, cfg := range c.OCRProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
