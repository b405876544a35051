package version

import (
	"testing"

	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		supported     string
		requested     string
		expectedCode  errors.ErrorCode
		errorContains string
	}{
		// Compatible cases
		{
			name:      "exact match",
			supported: "1.0.0",
			requested: "1.0.0",
		},
		{
			name:      "requested patch higher",
			supported: "1.0.0",
			requested: "1.0.3",
		},
		{
			name:      "v prefix",
			supported: "v1.2.0",
			requested: "1.2.9",
		},
		{
			name:      "development build",
			supported: "main",
			requested: "9.9.9",
		},
		{
			name:      "development config",
			supported: "1.0.0",
			requested: "main",
		},

		// Incompatible cases
		{
			name:          "minor differs",
			supported:     "1.0.0",
			requested:     "1.1.0",
			expectedCode:  errors.ErrCodeVersionMismatch,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major differs",
			supported:     "1.0.0",
			requested:     "2.0.0",
			expectedCode:  errors.ErrCodeVersionMismatch,
			errorContains: "major version mismatch",
		},
		{
			name:          "invalid requested",
			supported:     "1.0.0",
			requested:     "latest",
			expectedCode:  errors.ErrCodeInvalidVersion,
			errorContains: "invalid config version",
		},
		{
			name:          "invalid supported",
			supported:     "abc",
			requested:     "1.0.0",
			expectedCode:  errors.ErrCodeInvalidVersion,
			errorContains: "invalid supported version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.supported, tt.requested)

			if tt.expectedCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestGetVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "v0.3.1"
	assert.Equal(t, "v0.3.1", GetVersion())
}
