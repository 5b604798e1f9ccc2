// Package jsonl parses JSON Lines DataSources. This parser uses https://github.com/tidwall/gjson to process data.
// Each line holds one JSON object, whose top-level keys become columns. Nested objects and arrays
// are kept as raw JSON strings.
package jsonl
