// Package batch walks the input set and drives classification, naming,
// and sanitization for each discovered file in deterministic order.
//
// A single file's failure is recorded in the report and never aborts the
// batch; only setup problems (missing input folder, unwritable output)
// surface as errors. The orchestrator never writes outside the output
// root.
package batch
