// Package rules provides the built-in lint rules for contentlint.
//
// # Rules
//
//   - CL001: table-column-integrity - Table rows must have the same number
//     of columns as their header row. Rows made entirely of Liquid
//     conditional cells are exempt, since those directives resolve to a
//     build-configuration-dependent number of real columns.
//
// # Rule IDs
//
// Rule IDs use the CLxxx namespace and are stable across releases. Names
// may be used interchangeably with IDs in configuration.
//
// # Registration
//
// Built-in rules are registered with an engine's registry via
// RegisterDefaultRules, or constructed individually with their New
// functions.
package rules
