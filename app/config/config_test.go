package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("does/not/exist.yaml")

	assert.NoError(t, err)
	assert.Equal(t, defaults().StructuredMinConfidence, cfg.StructuredMinConfidence)
	assert.Equal(t, defaults().MaxCandidates, cfg.MaxCandidates)
}

func TestApplyEnvOverridesRejectsOutOfRangeThreshold(t *testing.T) {
	os.Setenv("AMS_STRUCTURED_THRESHOLD", "1.5")
	defer os.Unsetenv("AMS_STRUCTURED_THRESHOLD")

	cfg := defaults()
	applyEnvOverrides(&cfg)

	assert.Equal(t, defaults().StructuredMinConfidence, cfg.StructuredMinConfidence)
}

func TestApplyEnvOverridesAcceptsValidThreshold(t *testing.T) {
	os.Setenv("AMS_FUZZY_THRESHOLD", "0.42")
	defer os.Unsetenv("AMS_FUZZY_THRESHOLD")

	cfg := defaults()
	applyEnvOverrides(&cfg)

	assert.Equal(t, 0.42, cfg.FuzzyMinConfidence)
}

func TestApplyEnvOverridesRejectsOutOfRangeMaxCandidates(t *testing.T) {
	os.Setenv("AMS_MAX_CANDIDATES", "100")
	defer os.Unsetenv("AMS_MAX_CANDIDATES")

	cfg := defaults()
	applyEnvOverrides(&cfg)

	assert.Equal(t, defaults().MaxCandidates, cfg.MaxCandidates)
}

func TestOracleEnabledReflectsLLMCommand(t *testing.T) {
	cfg := defaults()
	assert.False(t, cfg.OracleEnabled())

	cfg.LLMCommand = "ams-oracle"
	assert.True(t, cfg.OracleEnabled())
}
