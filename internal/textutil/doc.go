// Package textutil provides text normalization and tokenization shared by
// the semantic booster and artifact naming.
//
// NormalizeText produces the canonical form that feeds embedding and cache
// keys: case-folded, punctuation stripped, whitespace collapsed. Tokenize
// splits normalized text into terms, filtering tokens shorter than 3
// characters. SanitizeToken converts free text into a filesystem-safe token.
package textutil
