// Package language normalizes the language codes recognizers attach to
// transcripts.
//
// Recognizers report ISO 639-1 codes, ISO 639-2 codes, region-tagged BCP 47
// forms such as "zh-TW", or plain English names. The run log stores the
// ISO 639-1 form, and the generation service uses IsCJK as a script-mode hint
// when a request has no script text to detect from.
package language
