package model

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the declared type tag of a property.
type Kind int

const (
	KindAny    Kind = iota // any
	KindString             // string
	KindNumber             // number
	KindBool               // bool
	KindModel              // model
	KindList               // list
	KindMap                // map
)
