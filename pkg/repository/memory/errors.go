package memory

import "github.com/pathlight-lab/pathlight/pkg/domain/types"

// ErrNotFound is returned when a requested entry does not exist
var ErrNotFound = types.ErrNotFound
