// Package printing renders computed invoices. It has two adapters over the
// same per-layout document model: the live view, a structured tree of
// fields and bound controls for interactive editing, and the export
// renderer, which produces a self-contained HTML document for download.
//
// Both adapters read every displayed value from invoicing.Invoice.Display,
// so the strings they show for invoice number, dates, rows and totals are
// the same.
package printing
