// Package digest computes a SHA256 content digest over a built site
// tree. The digest covers file paths and contents in sorted order,
// with repository metadata excluded, so two publishes of identical
// output produce identical digests regardless of filesystem order or
// timestamps.
package digest
