package helper

import "encoding/json"

/* =========================================================
   PatchField (tri-state): absent | null | value
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

// IsNull: field dikirim tapi nilainya null
func (p PatchField[T]) IsNull() bool { return p.Present && p.Value == nil }

// Set membuat PatchField yang "present" dengan nilai v (dipakai di test & seed).
func Set[T any](v T) PatchField[T] { return PatchField[T]{Present: true, Value: &v} }

// Null membuat PatchField yang "present" tapi null.
func Null[T any]() PatchField[T] { return PatchField[T]{Present: true} }
