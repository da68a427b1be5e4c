package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"regexp"
	"strings"
)

var invalidNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// RandomName generates a random name with the given prefix.
// The prefix is lower-cased and stripped of characters Azure ML does not accept in names.
func RandomName(prefix string) string {
	randomString := func(length int) string {
		letterBytes := "abcdefghijklmnopqrstuvwxyz0123456789"
		b := make([]byte, length)
		for i := range b {
			b[i] = letterBytes[rand.Intn(len(letterBytes))]
		}
		return string(b)
	}

	prefix = invalidNameChars.ReplaceAllString(strings.ToLower(prefix), "-")
	prefix = strings.Trim(prefix, "-_")
	if prefix == "" {
		return randomString(10)
	}

	return prefix + "_" + randomString(10)
}

// ResourceName derives a globally unique storage account / key vault name from a base name.
// The result is lowercase alphanumeric, starts with a letter, fits maxLen and carries a
// short hash of scope, so equal base names in different subscriptions or resource groups differ.
func ResourceName(base, scope, suffix string, maxLen int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	name := b.String()
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		name = "a" + name
	}

	sum := sha256.Sum256([]byte(scope))
	tail := hex.EncodeToString(sum[:])[:8] + suffix
	if keep := maxLen - len(tail); len(name) > keep {
		if keep < 1 {
			keep = 1
		}
		name = name[:keep]
	}

	name += tail
	if len(name) > maxLen {
		name = name[:maxLen]
	}

	return name
}
