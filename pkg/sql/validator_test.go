package sql

import (
	"errors"
	"testing"
)

func TestFirstStatement_Single(t *testing.T) {
	stmt, dropped, err := FirstStatement("SELECT 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt != "SELECT 1" {
		t.Errorf("expected %q, got %q", "SELECT 1", stmt)
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
}

func TestFirstStatement_KeepsFirstOfMany(t *testing.T) {
	stmt, dropped, err := FirstStatement("SELECT 1; SELECT 2; SELECT 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt != "SELECT 1" {
		t.Errorf("expected %q, got %q", "SELECT 1", stmt)
	}
	if dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", dropped)
	}
}

func TestFirstStatement_SemicolonInsideLiteral(t *testing.T) {
	input := "SELECT * FROM users WHERE note = 'a;b'"
	stmt, dropped, err := FirstStatement(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt != input {
		t.Errorf("expected %q, got %q", input, stmt)
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
}

func TestFirstStatement_Empty(t *testing.T) {
	_, _, err := FirstStatement("   ;  ; ")
	if !errors.Is(err, ErrEmptyStatement) {
		t.Fatalf("expected ErrEmptyStatement, got %v", err)
	}
}

func TestSplitStatements_EscapedQuotes(t *testing.T) {
	statements := SplitStatements(`SELECT 'it''s; fine'; SELECT 2`)
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(statements), statements)
	}
}

func TestIsDDL(t *testing.T) {
	tests := []struct {
		stmt string
		want bool
	}{
		{"CREATE TABLE foo (id INT)", true},
		{"create table foo (id INT)", true},
		{"ALTER TABLE foo ADD COLUMN bar INT", true},
		{"DROP TABLE foo", true},
		{"TRUNCATE foo", true},
		{"CREATE INDEX idx ON foo (id)", true},
		{"SELECT * FROM foo", false},
		{"INSERT INTO foo VALUES (1)", false},
		{"UPDATE foo SET id = 1", false},
		{"DELETE FROM foo", false},
	}
	for _, tt := range tests {
		if got := IsDDL(tt.stmt); got != tt.want {
			t.Errorf("IsDDL(%q) = %v, want %v", tt.stmt, got, tt.want)
		}
	}
}
