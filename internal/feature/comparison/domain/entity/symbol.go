// Package entity defines the domain models for the comparison feature.
package entity

// Symbol is a canonical ticker symbol (e.g., "NVDA", "BRK.B", "XETRA:SAP").
// A Symbol produced by the sanitizer is never empty.
type Symbol string

// String returns the symbol as a plain string.
func (s Symbol) String() string { return string(s) }
