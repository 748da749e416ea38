// Package loaders provides implementations of the DocumentLoader interface
// for the supported source formats. Each loader knows how to extract
// page-level text from a specific file type.
//
// Loaders are registered with the Registry at startup; the registry picks
// a loader by file extension.
package loaders
