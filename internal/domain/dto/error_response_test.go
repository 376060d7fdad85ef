package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorResponse_Error(t *testing.T) {
	cases := []struct {
		name string
		resp ErrorResponse
		want string
	}{
		{"message only", ErrorResponse{Message: "invalid nft_id"}, "invalid nft_id"},
		{"with details", ErrorResponse{Message: "invalid nft_id", ErrorDetails: "too short"}, "invalid nft_id: too short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resp.Error(); got != tc.want {
				t.Fatalf("Error()=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	e := NewErrorResponse("no sales found", nil)
	if e.Message != "no sales found" || e.ErrorDetails != "" {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.Location() != time.UTC || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp should be a fresh UTC time, got %v", e.Timestamp)
	}

	e = NewErrorResponse("failed to fetch sales", errors.New("connection reset"))
	if e.ErrorDetails != "connection reset" {
		t.Fatalf("unexpected %+v", e)
	}
}

func TestErrorResponse_JSONOmitsEmptyDetails(t *testing.T) {
	b, err := json.Marshal(NewErrorResponse("no sales found", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "error_details") || !strings.Contains(string(b), `"message":"no sales found"`) {
		t.Fatalf("unexpected json: %s", b)
	}
}
