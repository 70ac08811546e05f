package db

import (
	"errors"
	"testing"
)

func TestDBOperation(t *testing.T) {
	cases := map[string]string{
		"":                            "unknown",
		"  select id from snippets":   "SELECT",
		"INSERT INTO snippets VALUES": "INSERT",
		"with t as (select 1) select": "CTE",
	}
	for sql, want := range cases {
		if got := dbOperation(sql); got != want {
			t.Fatalf("dbOperation(%q) = %q, want %q", sql, got, want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if statusLabel(nil) != "ok" || statusLabel(errors.New("x")) != "error" {
		t.Fatal("unexpected status labels")
	}
}
