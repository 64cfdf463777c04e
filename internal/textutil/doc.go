// Package textutil provides text normalization helpers shared by matching,
// preset storage, and display formatting.
package textutil
