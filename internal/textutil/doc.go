// Package textutil provides the character classification and text
// normalization shared by the subtitle pipeline and the script aligner.
//
// The primary use cases are:
//   - Classifying runes as CJK, comparable ("core") characters, or
//     punctuation that must never start a subtitle line
//   - NFKC-normalizing and lower-casing text before alignment comparison
//   - Decoding transcript and script files from legacy encodings to UTF-8
//   - Guessing whether free text is CJK when a caller does not say
//   - Sanitizing filenames and path segments for safe filesystem use
//
// Everything here is stateless and safe for concurrent use.
package textutil
