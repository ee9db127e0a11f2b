package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		doc     map[string]interface{}
		wantErr string
	}{
		{
			name: "empty document",
			doc:  map[string]interface{}{},
		},
		{
			name: "full document",
			doc: map[string]interface{}{
				"version":      "1.0",
				"verbose":      true,
				"lenient":      false,
				"tool_timeout": "30s",
				"ignore":       []interface{}{"vendor/**"},
				"disabled":     []interface{}{"jvm", "go"},
				"session":      map[string]interface{}{"dir": "/tmp/x", "prefix": "hl"},
				"logging":      map[string]interface{}{"level": "debug"},
			},
		},
		{
			name: "unknown top-level keys are allowed",
			doc:  map[string]interface{}{"custom": map[string]interface{}{"a": 1}},
		},
		{
			name:    "unknown ecosystem",
			doc:     map[string]interface{}{"disabled": []interface{}{"cobol"}},
			wantErr: "/disabled/0",
		},
		{
			name:    "wrong type",
			doc:     map[string]interface{}{"verbose": "yes"},
			wantErr: "/verbose",
		},
		{
			name:    "unknown session key",
			doc:     map[string]interface{}{"session": map[string]interface{}{"path": "/tmp"}},
			wantErr: "/session",
		},
		{
			name:    "unsafe prefix",
			doc:     map[string]interface{}{"session": map[string]interface{}{"prefix": "../x"}},
			wantErr: "/session/prefix",
		},
		{
			name:    "bad log level",
			doc:     map[string]interface{}{"logging": map[string]interface{}{"level": "loud"}},
			wantErr: "/logging/level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, string(Schema()), `"tool_timeout"`)
}
