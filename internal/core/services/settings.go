package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDocumentPath      = "document.path"
	keyChunkSize         = "chunking.size"
	keyChunkOverlap      = "chunking.overlap"
	keyTopK              = "retrieval.top_k"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyGenModel          = "generation.model"
	keyGenBaseURL        = "generation.base_url"
	keyGenTimeoutSeconds = "generation.timeout_seconds"
	keyCacheEnabled      = "cache.enabled"
)

// settingsKeys lists the recognised keys in display order.
var settingsKeys = []string{
	keyDocumentPath,
	keyChunkSize,
	keyChunkOverlap,
	keyTopK,
	keyEmbedModel,
	keyEmbedBaseURL,
	keyGenModel,
	keyGenBaseURL,
	keyGenTimeoutSeconds,
	keyCacheEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings with defaults applied.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Document: domain.DocumentSettings{
			Path: s.configStore.GetString(keyDocumentPath), // No default - must be configured
		},
		Chunking: domain.ChunkingSettings{
			Size:    s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap: s.getIntAllowZero(keyChunkOverlap, defaults.Chunking.Overlap),
		},
		Retrieval: domain.RetrievalSettings{
			TopK: s.getInt(keyTopK, defaults.Retrieval.TopK),
		},
		Embedding: domain.ModelSettings{
			Model:   s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL: s.getString(keyEmbedBaseURL, defaults.Embedding.BaseURL),
		},
		Generation: domain.GenerationSettings{
			ModelSettings: domain.ModelSettings{
				Model:   s.getString(keyGenModel, defaults.Generation.Model),
				BaseURL: s.getString(keyGenBaseURL, defaults.Generation.BaseURL),
			},
			TimeoutSeconds: s.getInt(keyGenTimeoutSeconds, defaults.Generation.TimeoutSeconds),
		},
		Cache: domain.CacheSettings{
			Enabled: s.getBool(keyCacheEnabled, defaults.Cache.Enabled),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", s.configStore.Path(), err)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	pairs := []struct {
		key   string
		value any
	}{
		{keyDocumentPath, settings.Document.Path},
		{keyChunkSize, settings.Chunking.Size},
		{keyChunkOverlap, settings.Chunking.Overlap},
		{keyTopK, settings.Retrieval.TopK},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyGenModel, settings.Generation.Model},
		{keyGenBaseURL, settings.Generation.BaseURL},
		{keyGenTimeoutSeconds, settings.Generation.TimeoutSeconds},
		{keyCacheEnabled, settings.Cache.Enabled},
	}

	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save %s: %w", p.key, err)
		}
	}

	return nil
}

// Set parses and stores a single setting by its configuration key.
// The resulting settings are validated before anything is persisted.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	typed, err := applyKey(settings, key, value)
	if err != nil {
		return err
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(key, typed)
}

// Keys returns the recognised configuration keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsKeys))
	copy(keys, settingsKeys)
	return keys
}

// applyKey parses value for the given key, applies it to settings, and
// returns the typed value to persist.
func applyKey(settings *domain.Settings, key, value string) (any, error) {
	switch key {
	case keyDocumentPath:
		settings.Document.Path = value
		return value, nil
	case keyEmbedModel:
		settings.Embedding.Model = value
		return value, nil
	case keyEmbedBaseURL:
		settings.Embedding.BaseURL = value
		return value, nil
	case keyGenModel:
		settings.Generation.Model = value
		return value, nil
	case keyGenBaseURL:
		settings.Generation.BaseURL = value
		return value, nil
	case keyChunkSize, keyChunkOverlap, keyTopK, keyGenTimeoutSeconds:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidArgument, key, value)
		}
		switch key {
		case keyChunkSize:
			settings.Chunking.Size = n
		case keyChunkOverlap:
			settings.Chunking.Overlap = n
		case keyTopK:
			settings.Retrieval.TopK = n
		case keyGenTimeoutSeconds:
			settings.Generation.TimeoutSeconds = n
		}
		return n, nil
	case keyCacheEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a boolean, got %q", domain.ErrInvalidArgument, key, value)
		}
		settings.Cache.Enabled = b
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown configuration key %q", domain.ErrInvalidArgument, key)
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getIntAllowZero distinguishes an explicit zero from an absent key.
// A configured overlap of 0 is valid and must not fall back.
func (s *SettingsService) getIntAllowZero(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
