package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecordMarshalFieldNames(t *testing.T) {
	r := Record{
		Modified: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Type:     TypeBST,
		Values:   []int{10, 5, 15},
	}
	data, err := r.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, field := range []string{`"Date Modified"`, `"Type"`, `"Values"`} {
		if !strings.Contains(out, field) {
			t.Errorf("encoded record missing field %s:\n%s", field, out)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	r := NewRecord(TypeLinkedList, []int{4, 2, 9})
	data, err := r.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	got, err := UnmarshalRecord(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != TypeLinkedList {
		t.Errorf("type = %q", got.Type)
	}
	if len(got.Values) != 3 || got.Values[0] != 4 || got.Values[2] != 9 {
		t.Errorf("values = %v", got.Values)
	}
	if !got.Modified.Equal(r.Modified) {
		t.Errorf("modified = %v, want %v", got.Modified, r.Modified)
	}
}

func TestRecordSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tree.json")
	r := NewRecord(TypeBST, []int{1, 2, 3})

	if err := r.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Type != TypeBST || len(got.Values) != 3 {
		t.Errorf("loaded %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	if _, err := UnmarshalRecord([]byte("{not json")); err == nil {
		t.Error("expected error for malformed input")
	}
}
