// Package match associates image files with metadata rows.
//
// Exact matching tries the join key against the filename with and without
// extension, then walks the fallback keys. When nothing matches exactly,
// fuzzy matching extracts production tokens from the filename and scores
// every row by string similarity. Both entry points are pure functions:
// every input is an argument and every diagnostic is part of the return
// value.
package match
