// Copyright 2024 The go-hap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hapdb // import "github.com/go-hap/hap/hapdb"

import (
	"fmt"

	"github.com/go-hap/hap/waveform"
)

// Pattern is a named waveform pattern-memory image, as stored in the
// pattern library database.
type Pattern struct {
	PrimaryID int32  `json:"identifier"`
	Name      string `json:"name"`
	SeqID     uint8  `json:"seqid"`
	Image     []byte `json:"image"`
}

// Validate checks the pattern can be uploaded to a DA728x chip.
func (pat Pattern) Validate() error {
	if len(pat.Image) == 0 {
		return fmt.Errorf("hapdb: pattern %q has an empty image", pat.Name)
	}
	if len(pat.Image) > waveform.MemSize {
		return fmt.Errorf("hapdb: pattern %q image too big (%d > %d bytes)",
			pat.Name, len(pat.Image), waveform.MemSize,
		)
	}
	if pat.SeqID > 15 {
		return fmt.Errorf("hapdb: pattern %q has an invalid sequence id %d",
			pat.Name, pat.SeqID,
		)
	}
	return nil
}
