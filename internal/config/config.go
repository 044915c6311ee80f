package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Vector backends.
const (
	BackendQdrant   = "qdrant"
	BackendPGVector = "pgvector"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	LLMTemperature     float64
	LLMMaxTokens       int
	EmbeddingBaseURL   string
	EmbeddingModelName string
	DBPath             string
	CorpusPath         string
	VectorBackend      string
	QdrantURL          string
	QdrantAPIKey       string
	QdrantCollection   string
	VectorSize         int
	PGVectorDSN        string
	PGVectorTable      string
	APIPort            string
	LogLevel           string
	LogFormat          string
	TracingEndpoint    string
	Retrieval          RetrievalConfig
}

// RetrievalConfig holds the retrieval, reranking and confidence knobs.
// It can be loaded from a YAML file and overridden per key from the
// environment.
type RetrievalConfig struct {
	ConstitutionLimit   int             `yaml:"constitutionLimit"`
	MulukiActLimit      int             `yaml:"mulukiActLimit"`
	ActLimit            int             `yaml:"actLimit"`
	RuleLimit           int             `yaml:"ruleLimit"`
	MinSimilarity       float64         `yaml:"minSimilarity"`
	ConfidenceThreshold float64         `yaml:"confidenceThreshold"`
	MaxContextChars     int             `yaml:"maxContextChars"`
	MinSources          int             `yaml:"minSources"`
	LookupConcurrency   int             `yaml:"lookupConcurrency"`
	Boosts              BoostsConfig    `yaml:"boosts"`
	Penalties           PenaltiesConfig `yaml:"penalties"`
}

// BoostsConfig holds the reranking multipliers.
type BoostsConfig struct {
	Section   float64 `yaml:"section"`
	Chapter   float64 `yaml:"chapter"`
	Part      float64 `yaml:"part"`
	Priority1 float64 `yaml:"priority1"`
	Priority2 float64 `yaml:"priority2"`
}

// PenaltiesConfig holds the confidence penalties.
type PenaltiesConfig struct {
	WeakTop    float64 `yaml:"weakTop"`
	FewSources float64 `yaml:"fewSources"`
}

// DefaultRetrieval returns the production retrieval defaults.
func DefaultRetrieval() RetrievalConfig {
	return RetrievalConfig{
		ConstitutionLimit:   3,
		MulukiActLimit:      3,
		ActLimit:            3,
		RuleLimit:           5,
		MinSimilarity:       0.3,
		ConfidenceThreshold: 0.5,
		MaxContextChars:     9000,
		MinSources:          2,
		LookupConcurrency:   8,
		Boosts: BoostsConfig{
			Section:   1.30,
			Chapter:   1.20,
			Part:      1.15,
			Priority1: 1.10,
			Priority2: 1.05,
		},
		Penalties: PenaltiesConfig{
			WeakTop:    0.5,
			FewSources: 0.7,
		},
	}
}

// Collection returns the vector collection (Qdrant) or table (pgvector)
// name of the selected backend.
func (c *Config) Collection() string {
	if c.VectorBackend == BackendPGVector {
		return c.PGVectorTable
	}
	return c.QdrantCollection
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or up to five parent
// directories, it is loaded first. Environment variables already set take
// precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.groq.com/openai"),
		LLMModelName:       getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "intfloat/multilingual-e5-large"),
		DBPath:             getEnv("DB_PATH", "./data/legal.db"),
		CorpusPath:         getEnv("CORPUS_PATH", "./laws"),
		VectorBackend:      strings.ToLower(getEnv("VECTOR_BACKEND", BackendQdrant)),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       getEnv("QDRANT_API_KEY", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "nepali_legal_docs"),
		PGVectorDSN:        getEnv("PGVECTOR_DSN", ""),
		PGVectorTable:      getEnv("PGVECTOR_TABLE", "legal_passages"),
		APIPort:            getEnv("API_PORT", "8000"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "json")),
		TracingEndpoint:    getEnv("TRACING_ENDPOINT", ""),
	}

	if cfg.LLMTemperature, err = getFloat("LLM_TEMPERATURE", 0.2); err != nil {
		return nil, err
	}
	if cfg.LLMMaxTokens, err = getInt("LLM_MAX_TOKENS", 600); err != nil {
		return nil, err
	}

	// QDRANT_VECTOR_SIZE must match the output size of the embeddings model
	// and is used by both backends. If it changes, the collection must be
	// recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	cfg.Retrieval = DefaultRetrieval()
	if path := getEnv("RETRIEVAL_POLICY_FILE", ""); path != "" {
		if err := loadRetrievalFile(path, &cfg.Retrieval); err != nil {
			return nil, err
		}
	}
	if err := applyRetrievalEnv(&cfg.Retrieval); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create the data directory for the SQLite file if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.VectorBackend {
	case BackendQdrant:
	case BackendPGVector:
		if c.PGVectorDSN == "" {
			return errors.New("PGVECTOR_DSN is required when VECTOR_BACKEND is pgvector")
		}
	default:
		return fmt.Errorf("VECTOR_BACKEND must be %s or %s, got %q", BackendQdrant, BackendPGVector, c.VectorBackend)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}

	if c.LLMMaxTokens <= 0 {
		return errors.New("LLM_MAX_TOKENS must be greater than 0")
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be in [0,2], got %v", c.LLMTemperature)
	}
	return nil
}

// loadRetrievalFile overlays the YAML file at path onto r. Keys absent from
// the file keep their current value, and an empty file changes nothing.
func loadRetrievalFile(path string, r *RetrievalConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading retrieval policy file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(r); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing retrieval policy file %s: %w", path, err)
	}
	return nil
}

// applyRetrievalEnv overrides retrieval knobs from the environment.
func applyRetrievalEnv(r *RetrievalConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"CONSTITUTION_LIMIT", &r.ConstitutionLimit},
		{"MULUKI_ACT_LIMIT", &r.MulukiActLimit},
		{"ACT_LIMIT", &r.ActLimit},
		{"RULE_LIMIT", &r.RuleLimit},
		{"MAX_CONTEXT_CHARS", &r.MaxContextChars},
	}
	for _, v := range ints {
		n, err := getInt(v.key, *v.dst)
		if err != nil {
			return err
		}
		*v.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"MIN_SIMILARITY_SCORE", &r.MinSimilarity},
		{"CONFIDENCE_THRESHOLD", &r.ConfidenceThreshold},
	}
	for _, v := range floats {
		f, err := getFloat(v.key, *v.dst)
		if err != nil {
			return err
		}
		*v.dst = f
	}
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}
