package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/epiceriemtl/epicerie_backend/models"
)

func TestReportResponse_TrimmedBody(t *testing.T) {
	report := &models.Report{
		ID:         7,
		PrixId:     3,
		ReporterId: 2,
		Reporter:   models.User{ID: 2, Username: "marie", Password: "$2a$10$hash"},
		Reason:     models.ReportReasonIncorrectPrice,
		Status:     models.ReportStatusPending,
	}

	for _, created := range []bool{true, false} {
		body := reportResponse(report, created)
		for _, key := range []string{"status", "message", "report_id"} {
			if _, ok := body[key]; !ok {
				t.Errorf("created=%v: missing %q in response body", created, key)
			}
		}
		if len(body) != 3 {
			t.Errorf("created=%v: expected exactly status/message/report_id, got %v", created, body)
		}

		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		for _, leak := range []string{"password", "reporter", "$2a$"} {
			if strings.Contains(strings.ToLower(string(encoded)), leak) {
				t.Errorf("created=%v: response leaks %q: %s", created, leak, encoded)
			}
		}
	}

	if reportResponse(report, true)["status"] == reportResponse(report, false)["status"] {
		t.Error("first-time and repeat reports must be distinguishable by body content")
	}
}
