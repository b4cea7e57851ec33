// Package diag carries diagnostics through the compilation pipeline.
//
// Phases never print; they report into a Bag owned by the compilation and
// the CLI renders the sorted bag once the pipeline has finished. Codes are
// numbered by phase (LEX/SYN/SEM/RUN) and carry stable titles, which is
// what tooling and tests match on.
package diag
