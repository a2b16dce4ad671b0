// Package invoicing contains the invoicing bounded context: projects and
// their employee time entries, the invoice template catalog, and the pure
// computation stage that turns a project into a renderable invoice.
//
// Everything that depends on the current date takes it as an explicit
// parameter; nothing in this package reads the wall clock.
package invoicing
