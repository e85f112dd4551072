package paging

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCursors(t *testing.T) {
	r := httptest.NewRequest("GET", "/cases?before=b1&after=a1", nil)
	before, after := Cursors(r)
	if before != "b1" || after != "a1" {
		t.Errorf("Cursors() = (%q, %q), want (b1, a1)", before, after)
	}

	r = httptest.NewRequest("GET", "/cases", nil)
	before, after = Cursors(r)
	if before != "" || after != "" {
		t.Errorf("Cursors() on bare request = (%q, %q), want empty", before, after)
	}
}

func TestTrimPage(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		before   string
		after    string
		wantLen  int
		wantPrev bool
		wantNext bool
	}{
		{"first page short", 3, "", "", 3, false, false},
		{"first page overflow", PageSize + 1, "", "", PageSize, false, true},
		{"forward overflow", PageSize + 1, "", "c", PageSize, true, true},
		{"forward last page", 3, "", "c", 3, true, false},
		{"backward overflow", PageSize + 1, "c", "", PageSize, true, true},
		{"backward first page", 3, "c", "", 3, false, true},
		{"empty", 0, "", "", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]int, tt.rows)
			got := TrimPage(&rows, tt.before, tt.after)
			if len(rows) != tt.wantLen {
				t.Errorf("rows len = %d, want %d", len(rows), tt.wantLen)
			}
			if got.HasPrev != tt.wantPrev || got.HasNext != tt.wantNext {
				t.Errorf("TrimPage() = %+v, want prev=%v next=%v", got, tt.wantPrev, tt.wantNext)
			}
		})
	}
}

func TestConfigureKeyset(t *testing.T) {
	if cfg := ConfigureKeyset("", ""); cfg.Direction != Forward || cfg.SortOrder != 1 || cfg.Cursor != nil {
		t.Errorf("first page config = %+v", cfg)
	}
	if cfg := ConfigureKeyset("somecursor", ""); cfg.Direction != Backward || cfg.SortOrder != -1 {
		t.Errorf("backward config = %+v", cfg)
	}
	// before wins when both are present
	if cfg := ConfigureKeyset("b", "a"); cfg.Direction != Backward {
		t.Errorf("both cursors config = %+v, want Backward", cfg)
	}
}

func TestReverse(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	Reverse(rows)
	for i, want := range []int{4, 3, 2, 1} {
		if rows[i] != want {
			t.Fatalf("Reverse() got %v", rows)
		}
	}
	Reverse([]int{}) // must not panic
}

func TestBuildCursors(t *testing.T) {
	type item struct {
		Key string
		ID  primitive.ObjectID
	}
	keyFn := func(i item) string { return i.Key }
	idFn := func(i item) primitive.ObjectID { return i.ID }

	prev, next := BuildCursors(nil, keyFn, idFn)
	if prev != "" || next != "" {
		t.Errorf("BuildCursors(nil) = (%q, %q), want empty", prev, next)
	}

	rows := []item{
		{Key: "first", ID: primitive.NewObjectID()},
		{Key: "last", ID: primitive.NewObjectID()},
	}
	prev, next = BuildCursors(rows, keyFn, idFn)
	if prev == "" || next == "" || prev == next {
		t.Errorf("BuildCursors(rows) = (%q, %q), want two distinct cursors", prev, next)
	}
}
