package llm

import (
	"testing"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	input := `{"db_type": "mysql", "port": 3306}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_WithThinkTags(t *testing.T) {
	input := `<think>
The text looks like a JDBC URL.
</think>
{"db_type": "mysql"}`

	expected := `{"db_type": "mysql"}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_InMarkdownFence(t *testing.T) {
	input := "Here is the config:\n```json\n{\"host\": \"localhost\"}\n```"
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != `{"host": "localhost"}` {
		t.Errorf("got %q", result)
	}
}

func TestExtractJSON_BracesInStrings(t *testing.T) {
	input := `{"note": "a { tricky } value"}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not find any connection settings.")
	if err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestParseJSONResponse(t *testing.T) {
	type config struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}
	result, err := ParseJSONResponse[config]("```json\n{\"host\": \"db1\", \"port\": 5432}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Host != "db1" || result.Port != 5432 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestExtractSQL_SQLFence(t *testing.T) {
	input := "```sql\nSELECT * FROM users\n```"
	if got := ExtractSQL(input); got != "SELECT * FROM users" {
		t.Errorf("got %q", got)
	}
}

func TestExtractSQL_BareFence(t *testing.T) {
	input := "```\nSELECT 1\n```"
	if got := ExtractSQL(input); got != "SELECT 1" {
		t.Errorf("got %q", got)
	}
}

func TestExtractSQL_FenceWithProse(t *testing.T) {
	input := "Here is your query:\n```sql\nSELECT id FROM orders\n```\nLet me know if you need changes."
	if got := ExtractSQL(input); got != "SELECT id FROM orders" {
		t.Errorf("got %q", got)
	}
}

func TestExtractSQL_NoFence(t *testing.T) {
	input := "  SELECT * FROM users  "
	if got := ExtractSQL(input); got != "SELECT * FROM users" {
		t.Errorf("got %q", got)
	}
}

func TestExtractSQL_ThinkTags(t *testing.T) {
	input := "<think>need a join</think>\nSELECT * FROM a JOIN b ON a.id = b.a_id"
	if got := ExtractSQL(input); got != "SELECT * FROM a JOIN b ON a.id = b.a_id" {
		t.Errorf("got %q", got)
	}
}

func TestParseNameList_Lines(t *testing.T) {
	got := ParseNameList("users\norders\nproducts")
	want := []string{"users", "orders", "products"}
	assertStrings(t, got, want)
}

func TestParseNameList_BulletsAndNumbers(t *testing.T) {
	got := ParseNameList("- users\n* orders\n1. products\n2. customers")
	if len(got) != 4 {
		t.Fatalf("expected 4 names, got %v", got)
	}
	if got[0] != "users" || got[1] != "orders" || got[2] != "products" {
		t.Errorf("markers not stripped: %v", got)
	}
}

func TestParseNameList_CommaSeparated(t *testing.T) {
	got := ParseNameList("users, orders, products")
	want := []string{"users", "orders", "products"}
	assertStrings(t, got, want)
}

func TestParseNameList_BacktickedNames(t *testing.T) {
	got := ParseNameList("`users`\n`orders`")
	want := []string{"users", "orders"}
	assertStrings(t, got, want)
}

func TestParseNameList_Empty(t *testing.T) {
	if got := ParseNameList("   \n  "); got != nil {
		t.Errorf("expected nil for blank response, got %v", got)
	}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
