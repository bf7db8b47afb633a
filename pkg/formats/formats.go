// Package formats provides parsers for OpenFormats text files: ODR model
// descriptions, mesh files, OTX texture descriptors, and the shader preset
// catalog that describes vertex layouts.
package formats
