// Package convert owns value conversion between bound property types.
//
// Ownership boundary:
// - converter contract (ConvertTo / ConvertFrom)
// - Outcome and the NoValue sentinel
// - (source type, target type) registry and the built-in registration list
//
// NoValue is not an error. It means the input cannot be converted right
// now, e.g. an integer field that is momentarily empty while being edited.
package convert
