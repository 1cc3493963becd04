package uasset

import (
	"bytes"

	"github.com/galehaven/uasset/internal/kismet"
	"github.com/galehaven/uasset/internal/uversion"
)

// FPropertyDescriptor is a serialized FProperty (spec §4.6, §11
// supplement from unreal_asset's fproperty.rs): present only once the
// engine moved UProperty reflection data on-disk from USTRUCT linked
// lists to a flat FProperty descriptor array
// (uversion.FCoreObjectVersionFProperties).
type FPropertyDescriptor struct {
	Name          FName
	ArrayDim      int32
	PropertyFlags uint64
	RepIndex      uint16
	RepNotifyFunc FName
}

func readFPropertyDescriptor(r *Reader) (FPropertyDescriptor, error) {
	var d FPropertyDescriptor
	var err error
	if d.Name, err = r.ReadFName(); err != nil {
		return d, err
	}
	if d.ArrayDim, err = r.ReadI32(); err != nil {
		return d, err
	}
	if d.PropertyFlags, err = r.ReadU64(); err != nil {
		return d, err
	}
	if d.RepIndex, err = r.ReadU16(); err != nil {
		return d, err
	}
	d.RepNotifyFunc, err = r.ReadFName()
	return d, err
}

func writeFPropertyDescriptor(w *Writer, d FPropertyDescriptor) error {
	if err := w.WriteFName(d.Name); err != nil {
		return err
	}
	if err := w.WriteI32(d.ArrayDim); err != nil {
		return err
	}
	if err := w.WriteU64(d.PropertyFlags); err != nil {
		return err
	}
	if err := w.WriteU16(d.RepIndex); err != nil {
		return err
	}
	return w.WriteFName(d.RepNotifyFunc)
}

// StructExport serializes UClass/UScriptStruct/UFunction/UEnum exports:
// a UField chain (super struct, children), optionally a flat FProperty
// descriptor array, and for UFunction a Kismet bytecode body that
// decodes into an expression tree or, on any decode error, falls back to
// the raw byte span untouched (spec §4.7, §9 error-handling rule: this
// is the only recoverable error path in the codec).
type StructExport struct {
	NormalExport

	SuperStruct PackageIndex
	Children    []PackageIndex

	Properties []FPropertyDescriptor

	ScriptBytecodeSize  int32
	ScriptStorageSize   int32
	ScriptBytecode      []kismet.Expression
	ScriptBytecodeRaw   []byte
	bytecodeWasDecoded  bool
}

func (e *StructExport) ReadBody(r *Reader, bodyEnd int64) error {
	props, err := readProperties(r)
	if err != nil {
		return err
	}
	e.NormalExport.Properties = props

	super, err := r.ReadPackageIndex()
	if err != nil {
		return err
	}
	e.SuperStruct = super

	children, err := ReadArray(r, func(r *Reader) (PackageIndex, error) { return r.ReadPackageIndex() })
	if err != nil {
		return err
	}
	e.Children = children

	if r.Matrix.CustomVersion(uversion.KeyCoreObjectVersion) >= uversion.FCoreObjectVersionFProperties {
		props, err := ReadArray(r, readFPropertyDescriptor)
		if err != nil {
			return err
		}
		e.Properties = props
	}

	if !r.Matrix.AtLeast(uversion.VerUE4_16) {
		return nil
	}

	bytecodeSize, err := r.ReadI32()
	if err != nil {
		return err
	}
	e.ScriptBytecodeSize = bytecodeSize
	storageSize, err := r.ReadI32()
	if err != nil {
		return err
	}
	e.ScriptStorageSize = storageSize

	raw := make([]byte, storageSize)
	if err := r.ReadExact(raw); err != nil {
		return err
	}
	e.ScriptBytecodeRaw = raw

	exprs, err := kismet.Decode(bytes.NewReader(raw), storageSize)
	if err != nil {
		e.bytecodeWasDecoded = false
		return nil
	}
	e.ScriptBytecode = exprs
	e.bytecodeWasDecoded = true
	return nil
}

func (e *StructExport) WriteBody(w *Writer) error {
	if err := writeProperties(w, e.NormalExport.Properties); err != nil {
		return err
	}
	if err := w.WritePackageIndex(e.SuperStruct); err != nil {
		return err
	}
	if err := w.WriteI32(int32(len(e.Children))); err != nil {
		return err
	}
	for _, c := range e.Children {
		if err := w.WritePackageIndex(c); err != nil {
			return err
		}
	}

	if w.Matrix.CustomVersion(uversion.KeyCoreObjectVersion) >= uversion.FCoreObjectVersionFProperties {
		if err := w.WriteI32(int32(len(e.Properties))); err != nil {
			return err
		}
		for _, p := range e.Properties {
			if err := writeFPropertyDescriptor(w, p); err != nil {
				return err
			}
		}
	}

	if !w.Matrix.AtLeast(uversion.VerUE4_16) {
		return nil
	}

	if err := w.WriteI32(e.ScriptBytecodeSize); err != nil {
		return err
	}

	if e.bytecodeWasDecoded {
		var bw bytes.Buffer
		n, err := kismet.Encode(&bw, e.ScriptBytecode)
		if err != nil {
			return err
		}
		if err := w.WriteI32(int32(n)); err != nil {
			return err
		}
		return w.WriteAll(bw.Bytes())
	}

	if err := w.WriteI32(int32(len(e.ScriptBytecodeRaw))); err != nil {
		return err
	}
	return w.WriteAll(e.ScriptBytecodeRaw)
}
