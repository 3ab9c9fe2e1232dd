package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/pwrlabs/dbm/codec"
	"github.com/pwrlabs/dbm/document"
	"github.com/pwrlabs/dbm/store"
)

func TestNewHandle(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		id       string
		wantErr  bool
	}{
		{name: "valid", typeName: "Account", id: "42"},
		{name: "uuid id", typeName: "Account", id: "0190b0a8-6d55-7c3e-9e2a-1b2c3d4e5f60"},
		{name: "empty type", typeName: "", id: "42", wantErr: true},
		{name: "empty id", typeName: "Account", id: "", wantErr: true},
		{name: "dot", typeName: "Account", id: ".", wantErr: true},
		{name: "dot dot", typeName: "..", id: "42", wantErr: true},
		{name: "slash", typeName: "Account", id: "a/b", wantErr: true},
		{name: "backslash", typeName: `a\b`, id: "42", wantErr: true},
		{name: "nul", typeName: "Account", id: "4\x002", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := store.NewHandle(tt.typeName, tt.id)
			if tt.wantErr {
				if !errors.Is(err, store.ErrInvalidHandle) {
					t.Errorf("NewHandle() error = %v, want ErrInvalidHandle", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewHandle() error = %v", err)
			}
			if h.TypeName() != tt.typeName || h.ID() != tt.id {
				t.Errorf("NewHandle() = %v", h)
			}
		})
	}
}

func TestHandle_Paths(t *testing.T) {
	h := store.MustHandle("Account", "42")

	if got := h.String(); got != "Account/42" {
		t.Errorf("String() = %q", got)
	}
	if got, want := h.Dir("db"), filepath.Join("db", "Account", "42"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if got, want := h.DocumentPath("db", document.LayoutFlat, "json"), filepath.Join("db", "Account", "42-data.json"); got != want {
		t.Errorf("DocumentPath(flat) = %q, want %q", got, want)
	}
	if got, want := h.DocumentPath("db", document.LayoutNested, "json"), filepath.Join("db", "Account", "42", "data.json"); got != want {
		t.Errorf("DocumentPath(nested) = %q, want %q", got, want)
	}
	if h.IsZero() {
		t.Error("IsZero() = true for a valid handle")
	}
}

func TestMustHandle_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustHandle() did not panic")
		}
	}()
	store.MustHandle("", "")
}

func TestNewInstanceID(t *testing.T) {
	a, b := store.NewInstanceID(), store.NewInstanceID()
	if a == b {
		t.Fatalf("NewInstanceID() repeated %q", a)
	}

	id, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("uuid.Parse() error = %v", err)
	}
	if id.Version() != 7 {
		t.Errorf("Version() = %d, want 7", id.Version())
	}
	if _, err := store.NewHandle("Account", a); err != nil {
		t.Errorf("NewHandle() rejects generated id: %v", err)
	}
}

func TestValue_Forms(t *testing.T) {
	tests := []struct {
		name      string
		value     store.Value
		wantBytes []byte
		wantText  string
	}{
		{name: "int32", value: store.Int32(-1), wantBytes: []byte{0xFF, 0xFF, 0xFF, 0xFF}, wantText: "-1"},
		{name: "int16", value: store.Int16(258), wantBytes: []byte{0x02, 0x01}, wantText: "258"},
		{name: "decimal", value: store.Decimal(codec.MustParseDecimal("12.34")), wantBytes: []byte{0x02, 0, 0, 0, 0x04, 0xD2}, wantText: "12.34"},
		{name: "bool", value: store.Bool(true), wantBytes: []byte{1}, wantText: "true"},
		{name: "string", value: store.String("hi"), wantBytes: []byte("hi"), wantText: "hi"},
		{name: "bytes", value: store.Bytes([]byte{0xAB, 0x01}), wantBytes: []byte{0xAB, 0x01}, wantText: "ab01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.value.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(b) != string(tt.wantBytes) {
				t.Errorf("Encode() = % X, want % X", b, tt.wantBytes)
			}
			text, err := tt.value.Text()
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if text != tt.wantText {
				t.Errorf("Text() = %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestValue_Null(t *testing.T) {
	for _, v := range []store.Value{store.Null(), store.Bytes(nil), store.BigInt(nil), {}} {
		if !v.IsNull() {
			t.Errorf("IsNull() = false for %v", v.Kind())
		}
	}
	if store.String("").IsNull() {
		t.Error("empty string should not be null")
	}
}

func TestValue_InvalidNumber(t *testing.T) {
	v := store.Number(codec.Number{})
	if _, err := v.Encode(); !errors.Is(err, codec.ErrUnsupportedKind) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedKind", err)
	}
	if _, err := v.Text(); !errors.Is(err, codec.ErrUnsupportedKind) {
		t.Errorf("Text() error = %v, want ErrUnsupportedKind", err)
	}
}
