// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// codeAlphabet deliberately has no lowercase letters: codes are read out
// loud and typed back in, and lookups are case-insensitive anyway.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLen is the length of every generated session and user code.
const CodeLen = 8

// maxUnbiased is the largest byte value usable for an unbiased index:
// the highest multiple of len(codeAlphabet) below 256. Bytes at or
// above it are rejected, otherwise 256 % 36 leftover values would skew
// the draw toward the start of the alphabet.
const maxUnbiased = byte(256 / len(codeAlphabet) * len(codeAlphabet))

// NewCode creates a random 8-character code from A-Z0-9, uniformly
// distributed over the alphabet. The same generator serves session
// codes and participant user IDs.
func NewCode() (string, error) {
	var sb strings.Builder
	sb.Grow(CodeLen)
	buf := make([]byte, 2*CodeLen)
	for sb.Len() < CodeLen {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		for _, c := range buf {
			if c >= maxUnbiased {
				continue
			}
			sb.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
			if sb.Len() == CodeLen {
				break
			}
		}
	}
	return sb.String(), nil
}

// Normalize canonicalizes a session code for lookup: trimmed, uppercase.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
