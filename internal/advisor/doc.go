// Package advisor maps task text to a priority label. It prefers a
// remote zero-shot classifier and degrades to a deterministic local
// heuristic on any failure, so a suggestion is always produced and no
// remote error ever escapes this package.
package advisor
