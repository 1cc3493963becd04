package uasset

import (
	"reflect"
	"testing"
)

func TestPrimitiveReaderWriterRoundTrip(t *testing.T) {
	w := newPrimitiveWriter()
	if err := w.WriteU8(0xAB); err != nil {
		t.Fatalf("WriteU8 failed: %v", err)
	}
	if err := w.WriteI16(-1234); err != nil {
		t.Fatalf("WriteI16 failed: %v", err)
	}
	if err := w.WriteU32(0xDEADBEEF); err != nil {
		t.Fatalf("WriteU32 failed: %v", err)
	}
	if err := w.WriteI64(-9001); err != nil {
		t.Fatalf("WriteI64 failed: %v", err)
	}
	if err := w.WriteF32(3.5); err != nil {
		t.Fatalf("WriteF32 failed: %v", err)
	}
	if err := w.WriteBool(true); err != nil {
		t.Fatalf("WriteBool failed: %v", err)
	}
	guid := NewGuid()
	if err := w.WriteGuid(guid); err != nil {
		t.Fatalf("WriteGuid failed: %v", err)
	}

	r := newPrimitiveReader(w.Bytes())

	gotU8, err := r.ReadU8()
	if err != nil || gotU8 != 0xAB {
		t.Fatalf("ReadU8 = %v, %v; want 0xAB, nil", gotU8, err)
	}
	gotI16, err := r.ReadI16()
	if err != nil || gotI16 != -1234 {
		t.Fatalf("ReadI16 = %v, %v; want -1234, nil", gotI16, err)
	}
	gotU32, err := r.ReadU32()
	if err != nil || gotU32 != 0xDEADBEEF {
		t.Fatalf("ReadU32 = %v, %v; want 0xDEADBEEF, nil", gotU32, err)
	}
	gotI64, err := r.ReadI64()
	if err != nil || gotI64 != -9001 {
		t.Fatalf("ReadI64 = %v, %v; want -9001, nil", gotI64, err)
	}
	gotF32, err := r.ReadF32()
	if err != nil || gotF32 != 3.5 {
		t.Fatalf("ReadF32 = %v, %v; want 3.5, nil", gotF32, err)
	}
	gotBool, err := r.ReadBool()
	if err != nil || !gotBool {
		t.Fatalf("ReadBool = %v, %v; want true, nil", gotBool, err)
	}
	gotGuid, err := r.ReadGuid()
	if err != nil || gotGuid != guid {
		t.Fatalf("ReadGuid = %v, %v; want %v, nil", gotGuid, err, guid)
	}
}

func TestStringCodecASCIIRoundTrip(t *testing.T) {
	w := newPrimitiveWriter()
	if _, err := w.WriteString("Hello", false); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	r := newPrimitiveReader(w.Bytes())
	s, isNull, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if isNull {
		t.Fatalf("ReadString reported null for non-null input")
	}
	if s != "Hello" {
		t.Fatalf("ReadString = %q, want %q", s, "Hello")
	}
}

func TestStringCodecUTF16RoundTrip(t *testing.T) {
	const in = "café 中文"

	w := newPrimitiveWriter()
	if _, err := w.WriteString(in, false); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	r := newPrimitiveReader(w.Bytes())
	s, isNull, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if isNull {
		t.Fatalf("ReadString reported null for non-null input")
	}
	if s != in {
		t.Fatalf("ReadString = %q, want %q", s, in)
	}
}

func TestStringCodecNullString(t *testing.T) {
	w := newPrimitiveWriter()
	if _, err := w.WriteString("", true); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	r := newPrimitiveReader(w.Bytes())
	s, isNull, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if !isNull {
		t.Fatalf("ReadString did not report null for null input")
	}
	if s != "" {
		t.Fatalf("ReadString = %q, want empty", s)
	}
}

func TestStringCodecRejectsOutOfRangeLength(t *testing.T) {
	w := newPrimitiveWriter()
	if err := w.WriteI32(maxStringLen + 1); err != nil {
		t.Fatalf("WriteI32 failed: %v", err)
	}

	r := newPrimitiveReader(w.Bytes())
	_, _, err := r.ReadString()
	if err == nil {
		t.Fatalf("ReadString should have rejected an out-of-range length")
	}
	var invalid *InvalidFileError
	if !asInvalidFileError(err, &invalid) {
		t.Fatalf("ReadString error = %v, want *InvalidFileError", err)
	}
}

func TestGuidArrayRoundTrip(t *testing.T) {
	guids := []Guid{NewGuid(), NewGuid(), NewGuid()}

	w := newPrimitiveWriter()
	for _, g := range guids {
		if err := w.WriteGuid(g); err != nil {
			t.Fatalf("WriteGuid failed: %v", err)
		}
	}

	r := newPrimitiveReader(w.Bytes())
	got, err := r.ReadGuidArray(int32(len(guids)))
	if err != nil {
		t.Fatalf("ReadGuidArray failed: %v", err)
	}
	if !reflect.DeepEqual(got, guids) {
		t.Errorf("ReadGuidArray = %v, want %v", got, guids)
	}
}

// asInvalidFileError is a small helper mirroring errors.As without
// importing the errors package twice across test files.
func asInvalidFileError(err error, target **InvalidFileError) bool {
	if e, ok := err.(*InvalidFileError); ok {
		*target = e
		return true
	}
	return false
}
