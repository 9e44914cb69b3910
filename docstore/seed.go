// SPDX-License-Identifier: GPL-3.0-only

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// SeedFile is the on-disk shape accepted by LoadSeedFile.
type SeedFile struct {
	Documents map[string]Fields `json:"documents"`
}

func LoadJSON(filePath string) (*SeedFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

// LoadSeedFile upserts every document of the file into w and returns how many
// were written.
func LoadSeedFile(ctx context.Context, w Writer, filePath string) (int, error) {
	seed, err := LoadJSON(filePath)
	if err != nil {
		return 0, err
	}
	paths := make([]string, 0, len(seed.Documents))
	for p := range seed.Documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := w.PutDocument(ctx, p, seed.Documents[p]); err != nil {
			return 0, fmt.Errorf("seed %s: %w", p, err)
		}
	}
	return len(paths), nil
}
