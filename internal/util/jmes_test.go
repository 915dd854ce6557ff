package util_test

import (
	"reflect"
	"testing"

	util "github.com/Nao-Mk2/showjobs/internal/util"
)

func doc() []any {
	return []any{
		map[string]any{"file": "20161025", "fields": map[string]any{"Job Id": "1.head", "User Name": "alice"}},
		map[string]any{"file": "20161026", "fields": map[string]any{"Job Id": "2.head", "User Name": "bob"}},
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "field projection", expr: "[].fields.\"Job Id\""},
		{name: "filter expression", expr: "[?fields.\"User Name\"=='alice'].file"},
		{name: "unterminated bracket", expr: "user.[", wantErr: true},
		{name: "dangling operator", expr: "a ||", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := util.ValidateQuery(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateQuery(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want any
	}{
		{
			name: "projection",
			expr: "[].fields.\"Job Id\"",
			want: []any{"1.head", "2.head"},
		},
		{
			name: "filter",
			expr: "[?fields.\"User Name\"=='bob'].file",
			want: []any{"20161026"},
		},
		{
			name: "scalar result",
			expr: "[0].fields.\"User Name\"",
			want: "alice",
		},
		{
			name: "no match is an empty list",
			expr: "[?fields.\"User Name\"=='carol']",
			want: []any{},
		},
		{
			name: "null is an empty list",
			expr: "[0].fields.\"Exit Code\"",
			want: []any{},
		},
		{
			name: "empty string is kept",
			expr: "''",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := util.Query(tt.expr, doc())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Query(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestQueryInvalidExpression(t *testing.T) {
	if _, err := util.Query("user.[", doc()); err == nil {
		t.Fatalf("expected error for an invalid expression")
	}
}
