// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

// MaxLoginLength is the longest username GitHub accepts.
const MaxLoginLength = 39

// ValidLogin reports whether login satisfies GitHub's username grammar:
// 1 to 39 ASCII letters, digits, or hyphens, not starting or ending with
// a hyphen, with no two hyphens in a row.
func ValidLogin(login string) bool {
	if len(login) == 0 || len(login) > MaxLoginLength {
		return false
	}
	if login[0] == '-' || login[len(login)-1] == '-' {
		return false
	}
	previousHyphen := false
	for index := 0; index < len(login); index++ {
		character := login[index]
		switch {
		case character >= 'a' && character <= 'z',
			character >= 'A' && character <= 'Z',
			character >= '0' && character <= '9':
			previousHyphen = false
		case character == '-':
			if previousHyphen {
				return false
			}
			previousHyphen = true
		default:
			return false
		}
	}
	return true
}
