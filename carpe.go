// Package carpe provides a read-later library: it saves web articles, extracts
// their readable text, and produces AI summaries and answers over that text
// without exceeding the input or output budget of a single inference call.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, rod/).
package carpe
