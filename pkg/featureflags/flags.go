// ABOUTME: Feature flags gating ranking enhancers and optional API surfaces
// ABOUTME: Env-backed manager for production, static manager for tests

package featureflags

import (
	"context"
	"os"
	"strings"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// UncertaintyPenalty subtracts a penalty for sparse or stale listings
	UncertaintyPenalty FeatureFlag = "uncertainty_penalty"

	// InterferenceAdjustment consults the advisory service per listing
	InterferenceAdjustment FeatureFlag = "interference_adjustment"

	// BeliefBoost adds a boost from buyer-intent soft signals
	BeliefBoost FeatureFlag = "belief_boost"

	// MetricsEnabled enables the metrics endpoint
	MetricsEnabled FeatureFlag = "metrics_enabled"
)

// AllFlags lists every defined flag in a stable order
var AllFlags = []FeatureFlag{
	UncertaintyPenalty,
	InterferenceAdjustment,
	BeliefBoost,
	MetricsEnabled,
}

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// GetAllFlags returns the state of every flag in AllFlags
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables
type EnvManager struct {
	prefix string
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{prefix: prefix}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	envKey := m.prefix + strings.ToUpper(string(flag))
	value := os.Getenv(envKey)

	return strings.ToLower(value) == "true" || value == "1" || strings.ToLower(value) == "enabled"
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(AllFlags))
	for _, flag := range AllFlags {
		flags[flag] = m.IsEnabled(ctx, flag)
	}
	return flags
}

// StaticManager implements Manager with flag states fixed at construction
type StaticManager struct {
	flags map[FeatureFlag]bool
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	copied := make(map[FeatureFlag]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return &StaticManager{flags: copied}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	return m.flags[flag]
}

// GetAllFlags returns the state of every defined flag
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	result := make(map[FeatureFlag]bool, len(AllFlags))
	for _, flag := range AllFlags {
		result[flag] = m.flags[flag]
	}
	return result
}
