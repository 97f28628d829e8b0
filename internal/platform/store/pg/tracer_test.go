package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"select 1", "select 1"},
		{"SELECT\t*\nFROM\tpapers_cs_cv WHERE  id = $1", "SELECT * FROM papers_cs_cv WHERE id = $1"},
		{"\n\na\n\tb  c\r\nd", " a b c d"},
		{"", ""},
	}
	for i, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Fatalf("case %d: compact(%q) = %q, want %q", i, c.in, got, c.want)
		}
	}
}

func TestTracerLevelsAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	type line struct {
		Level     string  `json:"level"`
		ElapsedMS float64 `json:"elapsed_ms"`
		Slow      bool    `json:"slow"`
		SQL       string  `json:"sql"`
		Error     string  `json:"error"`
		Message   string  `json:"message"`
		Component string  `json:"component"`
	}

	ev := QueryEvent{
		SQL:       "SELECT *\n FROM\tfigures WHERE paper_id = ANY($1)",
		Args:      []any{[]string{"2401.1234"}},
		ElapsedUS: 4500,
		Err:       errors.New("boom"),
	}
	tr.OnQuery(context.Background(), ev)

	var got line
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("unmarshal: %v\nraw=%s", err, buf.String())
	}
	if got.Level != "info" {
		t.Fatalf("level = %q, want info", got.Level)
	}
	if got.ElapsedMS != 4.5 {
		t.Fatalf("elapsed_ms = %v, want 4.5", got.ElapsedMS)
	}
	if got.SQL != "SELECT * FROM figures WHERE paper_id = ANY($1)" {
		t.Fatalf("sql not compacted: %q", got.SQL)
	}
	if got.Error != "boom" || got.Message != "pg query" || got.Component != "pg" {
		t.Fatalf("unexpected fields: %+v", got)
	}

	buf.Reset()
	ev.Slow = true
	tr.OnQuery(context.Background(), ev)
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("unmarshal warn: %v", err)
	}
	if got.Level != "warn" || !got.Slow {
		t.Fatalf("slow event should log at warn: %+v", got)
	}
}
