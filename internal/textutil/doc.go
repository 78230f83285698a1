// Package textutil provides small text helpers shared across components:
// deriving display titles from filenames and cleaning user-supplied lists.
package textutil
