package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty data file returns ErrDataFileEmpty",
			config:  Config{DataFile: " ", Listen: DefaultListen},
			wantErr: ErrDataFileEmpty,
		},
		{
			name:    "empty listen returns ErrListenEmpty",
			config:  Config{DataFile: DefaultDataFile},
			wantErr: ErrListenEmpty,
		},
		{
			name:    "unknown log level returns ErrLogLevelUnknown",
			config:  Config{DataFile: DefaultDataFile, Listen: DefaultListen, LogLevel: "chatty"},
			wantErr: ErrLogLevelUnknown,
		},
		{
			name:    "valid config",
			config:  Config{DataFile: DefaultDataFile, Listen: DefaultListen, LogLevel: "DEBUG"},
			wantErr: nil,
		},
		{
			name:    "empty logo is valid",
			config:  Config{DataFile: DefaultDataFile, Listen: DefaultListen, LogoFile: ""},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
