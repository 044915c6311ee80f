package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var envVars = []string{
	"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY", "LLM_TEMPERATURE", "LLM_MAX_TOKENS",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
	"DB_PATH", "CORPUS_PATH",
	"VECTOR_BACKEND", "QDRANT_URL", "QDRANT_API_KEY", "QDRANT_COLLECTION", "QDRANT_VECTOR_SIZE",
	"PGVECTOR_DSN", "PGVECTOR_TABLE",
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT", "TRACING_ENDPOINT",
	"RETRIEVAL_POLICY_FILE",
	"CONSTITUTION_LIMIT", "MULUKI_ACT_LIMIT", "ACT_LIMIT", "RULE_LIMIT",
	"MIN_SIMILARITY_SCORE", "MAX_CONTEXT_CHARS", "CONFIDENCE_THRESHOLD",
}

// clearEnv blanks every config variable for the duration of the test.
// getEnv treats an empty value as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "legal.db"))
}

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write policy file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     string
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "1024")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.VectorSize != 1024 {
					t.Errorf("VectorSize = %d, want 1024", cfg.VectorSize)
				}
				if cfg.VectorBackend != BackendQdrant || cfg.Collection() != "nepali_legal_docs" {
					t.Errorf("backend = %s, collection = %s", cfg.VectorBackend, cfg.Collection())
				}
				if cfg.LLMMaxTokens != 600 || cfg.LLMTemperature != 0.2 {
					t.Errorf("LLM params = %d, %v", cfg.LLMMaxTokens, cfg.LLMTemperature)
				}
				if cfg.LogLevel != "info" || cfg.LogFormat != "json" || cfg.APIPort != "8000" {
					t.Errorf("ambient = %s %s %s", cfg.LogLevel, cfg.LogFormat, cfg.APIPort)
				}
				if cfg.Retrieval != DefaultRetrieval() {
					t.Errorf("Retrieval = %+v, want defaults", cfg.Retrieval)
				}
				if _, err := os.Stat(filepath.Dir(cfg.DBPath)); err != nil {
					t.Errorf("data directory not created: %v", err)
				}
			},
		},
		{
			name:     "missing vector size",
			setupEnv: func(t *testing.T) {},
			wantErr:  "QDRANT_VECTOR_SIZE is required",
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "large")
			},
			wantErr: "QDRANT_VECTOR_SIZE must be a valid integer",
		},
		{
			name: "zero vector size",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: "QDRANT_VECTOR_SIZE must be greater than 0",
		},
		{
			name: "pgvector backend",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("VECTOR_BACKEND", "PGVector")
				t.Setenv("PGVECTOR_DSN", "postgres://localhost/legal")
				t.Setenv("PGVECTOR_TABLE", "passages_e5")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.VectorBackend != BackendPGVector {
					t.Errorf("VectorBackend = %s", cfg.VectorBackend)
				}
				if cfg.Collection() != "passages_e5" {
					t.Errorf("Collection() = %s, want passages_e5", cfg.Collection())
				}
			},
		},
		{
			name: "pgvector without DSN",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("VECTOR_BACKEND", "pgvector")
			},
			wantErr: "PGVECTOR_DSN is required",
		},
		{
			name: "unknown backend",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("VECTOR_BACKEND", "weaviate")
			},
			wantErr: "VECTOR_BACKEND must be",
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("LOG_LEVEL", "verbose")
			},
			wantErr: "LOG_LEVEL must be",
		},
		{
			name: "invalid temperature",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("LLM_TEMPERATURE", "warm")
			},
			wantErr: "LLM_TEMPERATURE must be a valid number",
		},
		{
			name: "retrieval env overrides",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("CONSTITUTION_LIMIT", "4")
				t.Setenv("RULE_LIMIT", "2")
				t.Setenv("MIN_SIMILARITY_SCORE", "0.25")
				t.Setenv("MAX_CONTEXT_CHARS", "6000")
				t.Setenv("CONFIDENCE_THRESHOLD", "0.6")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				r := cfg.Retrieval
				if r.ConstitutionLimit != 4 || r.RuleLimit != 2 || r.ActLimit != 3 {
					t.Errorf("limits = %d/%d/%d", r.ConstitutionLimit, r.RuleLimit, r.ActLimit)
				}
				if r.MinSimilarity != 0.25 || r.ConfidenceThreshold != 0.6 || r.MaxContextChars != 6000 {
					t.Errorf("retrieval = %+v", r)
				}
			},
		},
		{
			name: "invalid retrieval override",
			setupEnv: func(t *testing.T) {
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("ACT_LIMIT", "three")
			},
			wantErr: "ACT_LIMIT must be a valid integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.checkConfig(t, cfg)
		})
	}
}

func TestLoad_RetrievalPolicyFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("QDRANT_VECTOR_SIZE", "1024")
	t.Setenv("RETRIEVAL_POLICY_FILE", writePolicyFile(t, `
constitutionLimit: 5
minSimilarity: 0.35
boosts:
  section: 1.5
penalties:
  fewSources: 0.8
`))
	// The environment wins over the file.
	t.Setenv("MIN_SIMILARITY_SCORE", "0.4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r := cfg.Retrieval
	if r.ConstitutionLimit != 5 {
		t.Errorf("ConstitutionLimit = %d, want 5", r.ConstitutionLimit)
	}
	if r.MinSimilarity != 0.4 {
		t.Errorf("MinSimilarity = %v, want 0.4", r.MinSimilarity)
	}
	if r.Boosts.Section != 1.5 || r.Boosts.Chapter != 1.20 {
		t.Errorf("Boosts = %+v", r.Boosts)
	}
	if r.Penalties.FewSources != 0.8 || r.Penalties.WeakTop != 0.5 {
		t.Errorf("Penalties = %+v", r.Penalties)
	}
	if r.MulukiActLimit != 3 {
		t.Errorf("MulukiActLimit = %d, want default 3", r.MulukiActLimit)
	}
}

func TestLoad_EmptyRetrievalPolicyFile(t *testing.T) {
	for _, content := range []string{"", "\n"} {
		clearEnv(t)
		t.Setenv("QDRANT_VECTOR_SIZE", "1024")
		t.Setenv("RETRIEVAL_POLICY_FILE", writePolicyFile(t, content))

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() with policy file %q error = %v", content, err)
		}
		if cfg.Retrieval != DefaultRetrieval() {
			t.Errorf("Retrieval = %+v, want defaults", cfg.Retrieval)
		}
	}
}

func TestLoad_RetrievalPolicyFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.yaml")
			},
			wantErr: "reading retrieval policy file",
		},
		{
			name: "unknown key",
			path: func(t *testing.T) string {
				return writePolicyFile(t, "sectionBoost: 2\n")
			},
			wantErr: "parsing retrieval policy file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("QDRANT_VECTOR_SIZE", "1024")
			t.Setenv("RETRIEVAL_POLICY_FILE", tt.path(t))

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
