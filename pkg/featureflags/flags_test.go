package featureflags

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUncertaintyPenalty_DisabledByDefault(t *testing.T) {
	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()

	assert.False(t, manager.IsEnabled(ctx, UncertaintyPenalty))
}

func TestBeliefBoost_EnabledWhenFlagSet(t *testing.T) {
	t.Setenv("TEST_FEATURE_BELIEF_BOOST", "true")

	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, BeliefBoost))
}

func TestEnvManager_MultipleValues(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"TRUE uppercase", "TRUE", true},
		{"1 numeric", "1", true},
		{"enabled", "enabled", true},
		{"ENABLED", "ENABLED", true},
		{"false", "false", false},
		{"0", "0", false},
		{"empty", "", false},
		{"other", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_FLAG", tt.value)
			defer os.Unsetenv("TEST_FLAG")

			manager := NewEnvManager("TEST_")
			assert.Equal(t, tt.expected, manager.IsEnabled(context.Background(), "FLAG"))
		})
	}
}

func TestEnvManager_GetAllFlags(t *testing.T) {
	t.Setenv("TEST_FEATURE_INTERFERENCE_ADJUSTMENT", "1")

	flags := NewEnvManager("TEST_FEATURE_").GetAllFlags()

	assert.Len(t, flags, len(AllFlags))
	assert.True(t, flags[InterferenceAdjustment])
	assert.False(t, flags[UncertaintyPenalty])
}

func TestStaticManager(t *testing.T) {
	input := map[FeatureFlag]bool{
		UncertaintyPenalty: true,
		BeliefBoost:        false,
	}
	manager := NewStaticManager(input)
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, UncertaintyPenalty))
	assert.False(t, manager.IsEnabled(ctx, BeliefBoost))
	assert.False(t, manager.IsEnabled(ctx, MetricsEnabled))

	input[MetricsEnabled] = true
	assert.False(t, manager.IsEnabled(ctx, MetricsEnabled), "later changes to the input map are not seen")
}

func TestStaticManager_GetAllFlags(t *testing.T) {
	flags := NewStaticManager(map[FeatureFlag]bool{BeliefBoost: true}).GetAllFlags()

	assert.Equal(t, map[FeatureFlag]bool{
		UncertaintyPenalty:     false,
		InterferenceAdjustment: false,
		BeliefBoost:            true,
		MetricsEnabled:         false,
	}, flags)

	assert.Len(t, NewStaticManager(nil).GetAllFlags(), len(AllFlags))
}

func TestFeatureFlagNames(t *testing.T) {
	assert.Equal(t, FeatureFlag("uncertainty_penalty"), UncertaintyPenalty)
	assert.Equal(t, FeatureFlag("interference_adjustment"), InterferenceAdjustment)
	assert.Equal(t, FeatureFlag("belief_boost"), BeliefBoost)
	assert.Equal(t, FeatureFlag("metrics_enabled"), MetricsEnabled)
}
