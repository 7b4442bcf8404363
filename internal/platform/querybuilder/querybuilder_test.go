package querybuilder

import (
	"testing"
	"time"
)

func TestSelect(t *testing.T) {
	query, args, err := Select("id", "email").
		From("users").
		Where(Eq("email", "jane@example.com"), Eq("name", "Jane")).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT id, email FROM users WHERE email = $1 AND name = $2 LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "jane@example.com" || args[1] != "Jane" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelect_RequiresTableAndColumns(t *testing.T) {
	if _, _, err := Select().From("users").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID        string    `db:"id"`
		Email     string    `db:"email,omitempty"`
		Skipped   string    `db:"-"`
		CreatedAt time.Time `db:"created_at"`
		hidden    string    `db:"hidden"`
		Untagged  string
	}

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("users", row{ID: "u1", Email: "a@b.c", CreatedAt: created, hidden: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO users (id, email, created_at) VALUES ($1, $2, $3) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "u1" || args[2] != created {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	var nilRow *struct{ ID string `db:"id"` }
	if _, _, err := InsertModel("users", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil pointer")
	}
	if _, _, err := InsertModel("users", "id", ""); err == nil {
		t.Fatalf("expected error for non-struct")
	}
	if _, _, err := InsertModel("users", struct{ ID string }{}, ""); err == nil {
		t.Fatalf("expected error for struct without db tags")
	}
}
