package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFFProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		runErr  error
		want    float64
		wantErr bool
	}{
		{
			name:   "valid duration",
			output: `{"format":{"duration":"123.456000"}}`,
			want:   123.456,
		},
		{
			name:    "command failure",
			runErr:  errors.New("exit status 1"),
			wantErr: true,
		},
		{
			name:    "malformed json",
			output:  "not json",
			wantErr: true,
		},
		{
			name:    "missing duration",
			output:  `{"format":{}}`,
			wantErr: true,
		},
		{
			name:    "zero duration",
			output:  `{"format":{"duration":"0.000000"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := NewFFProbe("ffprobe", 5*time.Second)
			probe.Run = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
				if tt.runErr != nil {
					return nil, tt.runErr
				}
				return []byte(tt.output), nil
			}

			got, err := probe.Duration(context.Background(), "/tmp/video.mp4")

			if tt.wantErr {
				if err == nil {
					t.Error("Duration() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("Duration() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFFProbeDefaults(t *testing.T) {
	probe := NewFFProbe("", 0)

	if probe.Binary != "ffprobe" {
		t.Errorf("Binary = %q, want ffprobe", probe.Binary)
	}
	if probe.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", probe.Timeout)
	}
}
