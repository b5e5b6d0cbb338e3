// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// idAlphabet is the base36 digit set used for the random id suffix.
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a fresh record id: the current epoch milliseconds in base36
// followed by a random base36 suffix, optionally under a type prefix
// ("post_", "log_", …). Collisions are treated as negligible, matching the
// legacy id scheme the stored datasets already use.
func NewID(prefix string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))
	for i := 0; i < 5; i++ {
		sb.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return sb.String()
}
