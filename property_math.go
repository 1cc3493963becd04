package uasset

// Math structs (spec §4.5, §11 supplement from
// unreal_asset/src/types/vector.rs, quat.rs, color.rs): fixed binary
// layouts with no per-field property headers, keyed by StructProperty's
// StructName. Classic (non-large-world-coordinates) single-precision
// encoding, matching the engine versions this codec otherwise targets.

type Vector struct{ X, Y, Z float32 }

func readVector(r *Reader) (Vector, error) {
	var v Vector
	var err error
	if v.X, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.Z, err = r.ReadF32()
	return v, err
}

func writeVector(w *Writer, v Vector) (int32, error) {
	if err := w.WriteF32(v.X); err != nil {
		return 0, err
	}
	if err := w.WriteF32(v.Y); err != nil {
		return 0, err
	}
	return 12, w.WriteF32(v.Z)
}

type Vector2D struct{ X, Y float32 }

func readVector2D(r *Reader) (Vector2D, error) {
	var v Vector2D
	var err error
	if v.X, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.Y, err = r.ReadF32()
	return v, err
}

func writeVector2D(w *Writer, v Vector2D) (int32, error) {
	if err := w.WriteF32(v.X); err != nil {
		return 0, err
	}
	return 8, w.WriteF32(v.Y)
}

type Vector4 struct{ X, Y, Z, W float32 }

func readVector4(r *Reader) (Vector4, error) {
	var v Vector4
	var err error
	if v.X, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Z, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.W, err = r.ReadF32()
	return v, err
}

func writeVector4(w *Writer, v Vector4) (int32, error) {
	if err := w.WriteF32(v.X); err != nil {
		return 0, err
	}
	if err := w.WriteF32(v.Y); err != nil {
		return 0, err
	}
	if err := w.WriteF32(v.Z); err != nil {
		return 0, err
	}
	return 16, w.WriteF32(v.W)
}

type Rotator struct{ Pitch, Yaw, Roll float32 }

func readRotator(r *Reader) (Rotator, error) {
	var v Rotator
	var err error
	if v.Pitch, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Yaw, err = r.ReadF32(); err != nil {
		return v, err
	}
	v.Roll, err = r.ReadF32()
	return v, err
}

func writeRotator(w *Writer, v Rotator) (int32, error) {
	if err := w.WriteF32(v.Pitch); err != nil {
		return 0, err
	}
	if err := w.WriteF32(v.Yaw); err != nil {
		return 0, err
	}
	return 12, w.WriteF32(v.Roll)
}

type Quat struct{ X, Y, Z, W float32 }

func readQuat(r *Reader) (Quat, error) {
	v4, err := readVector4(r)
	return Quat(v4), err
}

func writeQuat(w *Writer, v Quat) (int32, error) { return writeVector4(w, Vector4(v)) }

type Color struct{ B, G, R, A uint8 }

func readColor(r *Reader) (Color, error) {
	var v Color
	var err error
	if v.B, err = r.ReadU8(); err != nil {
		return v, err
	}
	if v.G, err = r.ReadU8(); err != nil {
		return v, err
	}
	if v.R, err = r.ReadU8(); err != nil {
		return v, err
	}
	v.A, err = r.ReadU8()
	return v, err
}

func writeColor(w *Writer, v Color) (int32, error) {
	if err := w.WriteU8(v.B); err != nil {
		return 0, err
	}
	if err := w.WriteU8(v.G); err != nil {
		return 0, err
	}
	if err := w.WriteU8(v.R); err != nil {
		return 0, err
	}
	return 4, w.WriteU8(v.A)
}

type LinearColor struct{ R, G, B, A float32 }

func readLinearColor(r *Reader) (LinearColor, error) {
	v4, err := readVector4(r)
	return LinearColor{R: v4.X, G: v4.Y, B: v4.Z, A: v4.W}, err
}

func writeLinearColor(w *Writer, v LinearColor) (int32, error) {
	return writeVector4(w, Vector4{X: v.R, Y: v.G, Z: v.B, W: v.A})
}

type Box struct {
	Min, Max Vector
	IsValid  bool
}

func readBox(r *Reader) (Box, error) {
	var v Box
	var err error
	if v.Min, err = readVector(r); err != nil {
		return v, err
	}
	if v.Max, err = readVector(r); err != nil {
		return v, err
	}
	iv, err := r.ReadU8()
	v.IsValid = iv != 0
	return v, err
}

func writeBox(w *Writer, v Box) (int32, error) {
	if _, err := writeVector(w, v.Min); err != nil {
		return 0, err
	}
	if _, err := writeVector(w, v.Max); err != nil {
		return 0, err
	}
	var iv uint8
	if v.IsValid {
		iv = 1
	}
	return 25, w.WriteU8(iv)
}

type IntPoint struct{ X, Y int32 }

func readIntPoint(r *Reader) (IntPoint, error) {
	var v IntPoint
	var err error
	if v.X, err = r.ReadI32(); err != nil {
		return v, err
	}
	v.Y, err = r.ReadI32()
	return v, err
}

func writeIntPoint(w *Writer, v IntPoint) (int32, error) {
	if err := w.WriteI32(v.X); err != nil {
		return 0, err
	}
	return 8, w.WriteI32(v.Y)
}

// mathStructs lists the StructName values serialized as a fixed binary
// layout instead of a recursive property list (spec §4.5 edge case).
// StructProperty consults this set before falling back to the generic
// codec.
var mathStructs = map[string]struct {
	read  func(r *Reader) (interface{}, int32, error)
	write func(w *Writer, v interface{}) (int32, error)
}{
	"Vector": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readVector(r); return v, 12, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeVector(w, v.(Vector))
		},
	},
	"Vector2D": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readVector2D(r); return v, 8, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeVector2D(w, v.(Vector2D))
		},
	},
	"Vector4": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readVector4(r); return v, 16, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeVector4(w, v.(Vector4))
		},
	},
	"Rotator": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readRotator(r); return v, 12, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeRotator(w, v.(Rotator))
		},
	},
	"Quat": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readQuat(r); return v, 16, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeQuat(w, v.(Quat))
		},
	},
	"Color": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readColor(r); return v, 4, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeColor(w, v.(Color))
		},
	},
	"LinearColor": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readLinearColor(r); return v, 16, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeLinearColor(w, v.(LinearColor))
		},
	},
	"Box": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readBox(r); return v, 25, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeBox(w, v.(Box))
		},
	},
	"IntPoint": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := readIntPoint(r); return v, 8, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return writeIntPoint(w, v.(IntPoint))
		},
	},
	"Guid": {
		read: func(r *Reader) (interface{}, int32, error) { v, err := r.ReadGuid(); return v, 16, err },
		write: func(w *Writer, v interface{}) (int32, error) {
			return 16, w.WriteGuid(v.(Guid))
		},
	},
}
