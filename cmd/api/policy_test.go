package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/config"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag"
)

func TestPolicyFromConfig_Defaults(t *testing.T) {
	got, err := policyFromConfig(config.DefaultRetrieval())
	if err != nil {
		t.Fatalf("policyFromConfig() error = %v", err)
	}
	if want := rag.DefaultPolicy(); !reflect.DeepEqual(got, want) {
		t.Errorf("policyFromConfig(defaults) = %+v, want %+v", got, want)
	}
}

func TestPolicyFromConfig_Overrides(t *testing.T) {
	c := config.DefaultRetrieval()
	c.RuleLimit = 2
	c.Boosts.Section = 1.6

	got, err := policyFromConfig(c)
	if err != nil {
		t.Fatalf("policyFromConfig() error = %v", err)
	}
	if got.Limit(legal.DocTypeRule) != 2 {
		t.Errorf("rule limit = %d, want 2", got.Limit(legal.DocTypeRule))
	}
	if got.Boosts.Section != 1.6 {
		t.Errorf("section boost = %v, want 1.6", got.Boosts.Section)
	}
}

func TestPolicyFromConfig_Invalid(t *testing.T) {
	c := config.DefaultRetrieval()
	c.ActLimit = 0

	_, err := policyFromConfig(c)
	if err == nil || !strings.Contains(err.Error(), "retrieval policy") {
		t.Errorf("policyFromConfig() error = %v, want retrieval policy error", err)
	}
}
