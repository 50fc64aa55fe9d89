package common

import (
	"encoding/json"
	"testing"
)

func TestPageRef_JSON(t *testing.T) {
	tests := []struct {
		name string
		page PageRef
		want string
	}{
		{name: "known page", page: Page(12), want: `12`},
		{name: "unknown page", page: PageRef{}, want: `"N/A"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.page)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(b) != tc.want {
				t.Fatalf("Marshal() = %s, want %s", b, tc.want)
			}
		})
	}
}

func TestPageRef_UnmarshalAcceptsStrings(t *testing.T) {
	var doc Document
	input := `{"page_content":"x","metadata":{"source":"a.pdf","page":"7"}}`
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Metadata.Page != Page(7) {
		t.Fatalf("expected page 7, got %+v", doc.Metadata.Page)
	}

	input = `{"page_content":"x","metadata":{"source":"a.pdf","page":"N/A"}}`
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Metadata.Page.Valid {
		t.Fatalf("expected unknown page, got %+v", doc.Metadata.Page)
	}
}
