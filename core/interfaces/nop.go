package interfaces

import "time"

// NopLogger discards every log call.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) ObserveConnector(string, string, time.Duration) {}
func (NopMetrics) ObserveCacheLookup(bool)                        {}
func (NopMetrics) ObserveEnhancerError(string)                    {}
