// Package utils provides small type conversion helpers.
//
// GLPI responses are decoded into map[string]any, so scalar values arrive as
// json.Number-like floats, strings, or ints depending on the field. These
// helpers give the normalizer and handlers one safe way to coerce them.
package utils
