// Package extract locates the most likely JSON object substring inside
// arbitrary text. Language models surround payloads with narrative prose,
// markdown code fences, or trailing commentary; [Extract] peels those
// layers away without ever fabricating structure, so text with no JSON in
// it flows through unchanged and fails at the parsing stage instead.
package extract
