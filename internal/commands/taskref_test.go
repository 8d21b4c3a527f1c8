package commands

import (
	"testing"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if ref.ID != "" {
		t.Errorf("expected empty ID, got %q", ref.ID)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"3f2c9a"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "3f2c9a" {
		t.Errorf("expected ID 3f2c9a, got %q", ref.ID)
	}
	if ref.Num != 0 {
		t.Errorf("expected Num 0, got %d", ref.Num)
	}
}

func TestParseTaskRef_ByIDKeepsDigits(t *testing.T) {
	ref, err := ParseTaskRef([]string{"42"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "42" {
		t.Errorf("expected ID 42, got %q", ref.ID)
	}
}

func TestParseTaskRef_TrimsSpace(t *testing.T) {
	ref, err := ParseTaskRef([]string{" 2 "}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 2 {
		t.Errorf("expected Num 2, got %d", ref.Num)
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{}, false)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Blank_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"  "}, false)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_ExtraArg_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"}, false)
	if err == nil {
		t.Fatal("expected error for extra argument")
	}
	expectedMsg := "unexpected argument: 2"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseTaskRef_Zero_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"0"}, false)
	if err == nil {
		t.Fatal("expected error for task number 0")
	}
	expectedMsg := "task number out of range: 0"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseTaskRef_NonASCIIDigits(t *testing.T) {
	// Arabic-Indic digits are not list numbers.
	ref, err := ParseTaskRef([]string{"٣"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "٣" {
		t.Errorf("expected ID, got %#v", ref)
	}
}

func TestTaskRef_String(t *testing.T) {
	if got := (TaskRef{Num: 3}).String(); got != "3" {
		t.Errorf("expected 3, got %q", got)
	}
	if got := (TaskRef{ID: "abc"}).String(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
