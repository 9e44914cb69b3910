// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"numdash-server/commons/prefix"
	"os"
	"path/filepath"
)

// Numbering is the classifier used by request handlers. It is replaced only
// by InitNumbering at startup.
var Numbering = prefix.Default()

func InitNumbering() {
	blocked := prefix.DefaultBlockedCallingCodes

	overwritePath := GetEnv("BLOCKED_CALLING_CODES_FILE", filepath.Join(".", "blocked_calling_codes.json"))
	if _, err := os.Stat(overwritePath); err == nil {
		overwrite, err := prefix.LoadOverwrite(overwritePath)
		if err != nil {
			Logger.Warnf("Ignoring blocked calling codes overwrite %s, keeping the defaults: %v", overwritePath, err)
		} else {
			blocked = overwrite.Blocked
			Logger.Infof("Loaded %d blocked calling codes from %s", len(blocked), overwritePath)
		}
	}

	Numbering = prefix.New(blocked)
	Logger.Infof("Numbering plan ready, blocked calling codes: %v", Numbering.BlockedCallingCodes())
}
