// Package alignment re-times an authoritative script against speech
// recognizer output.
//
// Both sides are reduced to comparable characters (NFKC, lower-cased,
// letters and digits only) and matched with a longest common subsequence.
// When the dynamic-programming table would exceed the configured cell limit
// a greedy anchor matcher with bounded lookahead is used instead. Matched
// script characters inherit the recognizer timing of their partner;
// unmatched ones are interpolated between anchors. Character timings are
// then folded back into the script tokens.
//
// Align is pure and safe for concurrent use.
package alignment
