// Package fingerprint provides change-detection hashes for task content.
//
// The digest decides whether a task needs re-summarization, nothing more.
// It is not a security boundary, so a truncated BLAKE2b digest keeps rows
// short while staying collision-resistant for workspace-sized corpora.
package fingerprint

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// digestLen is the digest size in bytes; 16 bytes = 32 hex chars.
const digestLen = 16

// Hash returns the deterministic fingerprint of content.
func Hash(content string) string {
	h, err := blake2b.New(digestLen, nil)
	if err != nil {
		// Only possible with a bad key; we pass nil.
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

// Task fingerprints a task definition. Command text and file path both feed
// the digest so moving a script or editing its invocation re-triggers
// summarization, with NUL separators to keep field boundaries unambiguous.
func Task(label, typ, command, fileContent string) string {
	h, err := blake2b.New(digestLen, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	for _, field := range []string{label, typ, command, fileContent} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
