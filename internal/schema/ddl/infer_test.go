package ddl

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSanitizeIdent verifies identifier sanitization, including that the
// operation is idempotent: sanitizing an already-sanitized name returns it
// unchanged.
func TestSanitizeIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean", in: "customer_id", want: "customer_id"},
		{name: "spaces", in: "first name", want: "first_name"},
		{name: "punctuation", in: "e-mail (work)", want: "e_mail__work_"},
		{name: "unicode", in: "naïve", want: "na_ve"},
		{name: "digits ok", in: "col9", want: "col9"},
		{name: "empty", in: "", want: ""},
		{name: "quotes", in: `"id"`, want: "_id_"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SanitizeIdent(tt.in)
			if got != tt.want {
				t.Fatalf("SanitizeIdent(%q) = %q, want %q", tt.in, got, tt.want)
			}

			// Idempotence: a second pass must be a no-op.
			if again := SanitizeIdent(got); again != got {
				t.Fatalf("SanitizeIdent(%q) = %q, not idempotent", got, again)
			}
		})
	}
}

// TestInferColumns verifies header splitting, sanitization, and column order
// preservation.
func TestInferColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    []string
		wantErr bool
	}{
		{
			name:   "simple",
			header: "id,name,email",
			want:   []string{"id", "name", "email"},
		},
		{
			name:   "needs sanitizing",
			header: "order id,unit-price,total €",
			want:   []string{"order_id", "unit_price", "total__"},
		},
		{
			name:   "single column",
			header: "value",
			want:   []string{"value"},
		},
		{
			name:    "empty header",
			header:  "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cols, err := InferColumns(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("InferColumns(%q) error = nil, want non-nil", tt.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("InferColumns(%q) error = %v", tt.header, err)
			}
			if len(cols) != len(tt.want) {
				t.Fatalf("InferColumns(%q) returned %d columns, want %d", tt.header, len(cols), len(tt.want))
			}
			for i, c := range cols {
				if c.Name != tt.want[i] {
					t.Fatalf("column[%d] = %q, want %q", i, c.Name, tt.want[i])
				}
			}
		})
	}
}

// TestReadHeader verifies first-line extraction and the error paths for
// missing and empty files.
func TestReadHeader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	good := filepath.Join(dir, "good.csv")
	if err := os.WriteFile(good, []byte("id,name\n1,alice\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ReadHeader(good)
	if err != nil {
		t.Fatalf("ReadHeader(good) error = %v", err)
	}
	if got != "id,name" {
		t.Fatalf("ReadHeader(good) = %q, want %q", got, "id,name")
	}

	if _, err := ReadHeader(empty); err == nil {
		t.Fatalf("ReadHeader(empty) error = nil, want non-nil")
	}
	if _, err := ReadHeader(filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatalf("ReadHeader(missing) error = nil, want non-nil")
	}
}
