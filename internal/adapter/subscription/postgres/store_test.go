package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/strogmv/pushd/internal/port"
)

type fakeExecer struct {
	sql  []string
	args [][]any
	err  error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return pgconn.CommandTag{}, f.err
}

func TestSave_UpsertsOnUserSession(t *testing.T) {
	db := &fakeExecer{}
	s := &SubscriptionStore{DB: db}

	sub := port.WebPushSubscription{Endpoint: "https://push.example/ep", P256DH: "key", Auth: "secret"}
	if err := s.Save(context.Background(), "u1", "s1", sub); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(db.sql) != 1 {
		t.Fatalf("executed %d statements, want 1", len(db.sql))
	}
	if !strings.Contains(db.sql[0], "ON CONFLICT (user_id, session_id)") {
		t.Fatalf("expected upsert statement, got: %s", db.sql[0])
	}
	want := []any{"u1", "s1", "https://push.example/ep", "key", "secret"}
	if len(db.args[0]) != len(want) {
		t.Fatalf("args = %v", db.args[0])
	}
	for i, a := range want {
		if db.args[0][i] != a {
			t.Fatalf("arg %d = %v, want %v", i, db.args[0][i], a)
		}
	}
}

func TestRemoveDuplicateFCM_ExcludesOwnSession(t *testing.T) {
	db := &fakeExecer{}
	s := &SubscriptionStore{DB: db}

	if err := s.RemoveDuplicateFCM(context.Background(), "u1", "s1", "tok"); err != nil {
		t.Fatalf("RemoveDuplicateFCM: %v", err)
	}

	stmt := db.sql[0]
	if !strings.Contains(stmt, "endpoint = 'fcm'") {
		t.Fatalf("statement must target fcm rows only: %s", stmt)
	}
	if !strings.Contains(stmt, "session_id <> $3") {
		t.Fatalf("statement must keep the current session: %s", stmt)
	}
}

func TestStore_SurfacesDatabaseErrors(t *testing.T) {
	dbErr := errors.New("connection refused")
	s := &SubscriptionStore{DB: &fakeExecer{err: dbErr}}

	if err := s.Delete(context.Background(), "u1", "s1"); !errors.Is(err, dbErr) {
		t.Fatalf("Delete error = %v, want wrapped %v", err, dbErr)
	}
}
