// SPDX-License-Identifier: GPL-3.0-only

package prefix

import (
	"encoding/json"
	"errors"
	"os"
)

// ErrEmptyOverwrite is returned for an overwrite file that blocks nothing,
// usually a misspelled "blocked" key.
var ErrEmptyOverwrite = errors.New("blocked calling codes overwrite is empty")

// Overwrite is the on-disk shape of blocked_calling_codes.json.
type Overwrite struct {
	Blocked []string `json:"blocked"`
}

// LoadOverwrite reads a blocklist overwrite file. A file without any usable
// calling code is rejected so the default blocklist stays in force.
func LoadOverwrite(filePath string) (*Overwrite, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var o Overwrite
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(o.Blocked))
	for _, code := range o.Blocked {
		if cleaned := Clean(code); cleaned != "" {
			codes = append(codes, cleaned)
		}
	}
	if len(codes) == 0 {
		return nil, ErrEmptyOverwrite
	}
	o.Blocked = codes
	return &o, nil
}
