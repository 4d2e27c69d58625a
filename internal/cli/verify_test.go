package cli

import "testing"

func TestParseFacts(t *testing.T) {
	facts, err := parseFacts([]string{"capital=New Delhi", "currency=Indian Rupee"})
	if err != nil {
		t.Fatalf("parseFacts: %v", err)
	}
	if facts["capital"] != "New Delhi" || facts["currency"] != "Indian Rupee" {
		t.Errorf("facts = %v", facts)
	}

	for _, bad := range []string{"capital", "=value", "capital="} {
		if _, err := parseFacts([]string{bad}); err == nil {
			t.Errorf("parseFacts(%q) should fail", bad)
		}
	}
}
