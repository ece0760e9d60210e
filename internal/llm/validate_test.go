package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", headlineJSON, false},
		{"empty reasons", `{"headline":"x","reasons":[]}`, false},
		{"missing required", `{"headline":"x"}`, true},
		{"wrong type", `{"headline":"x","reasons":"no"}`, true},
		{"extra property", `{"headline":"x","reasons":[],"tier":"tier1"}`, true},
		{"malformed", `{"headline":`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(headlineSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Errorf("err type = %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Errorf("nil schema rejected: %v", err)
	}
}
