package util

import (
	"slices"
	"testing"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("GL_TEST_NUM", "2.5")
	t.Setenv("GL_TEST_BAD_NUM", "abc")
	t.Setenv("GL_TEST_BOOL", "true")
	t.Setenv("GL_TEST_LIST", " a, ,b ")

	if got := GetEnvNumeric("GL_TEST_NUM", 1); got != 2.5 {
		t.Fatalf("GetEnvNumeric() = %v", got)
	}
	if got := GetEnvNumeric("GL_TEST_BAD_NUM", 7); got != 7 {
		t.Fatalf("expected default for invalid number, got %v", got)
	}
	if !GetEnvBool("GL_TEST_BOOL", false) {
		t.Fatal("GetEnvBool() = false")
	}
	if got := GetEnvString("GL_TEST_UNSET", "x"); got != "x" {
		t.Fatalf("GetEnvString() = %q", got)
	}
	if got := GetEnvList("GL_TEST_LIST", nil); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("GetEnvList() = %v", got)
	}
	if got := GetEnvList("GL_TEST_UNSET", []string{"*"}); !slices.Equal(got, []string{"*"}) {
		t.Fatalf("expected default list, got %v", got)
	}
}
