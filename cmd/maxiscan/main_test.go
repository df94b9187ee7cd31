package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
)

func TestSetupTracing(t *testing.T) {
	tests := []struct {
		verbose bool
		want    tracing.TraceLevel
	}{
		{true, tracing.LevelDebug},
		{false, tracing.LevelError},
	}
	for _, tt := range tests {
		setupTracing(tt.verbose)
		for _, key := range traceKeys {
			if got := tracing.Select(key).GetTraceLevel(); got != tt.want {
				t.Errorf("verbose=%v: %s level = %v, want %v", tt.verbose, key, got, tt.want)
			}
		}
	}
}
