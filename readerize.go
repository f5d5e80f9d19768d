// Package readerize extracts the main content of web pages. It fetches a
// page, scores its elements to find the article body, strips navigation,
// ads and other chrome, and stitches multi-page articles into one document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, bluemonday/). The
// extraction engine itself lives in readability/.
package readerize
