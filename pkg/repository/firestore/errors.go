package firestore

import "github.com/pathlight-lab/pathlight/pkg/domain/types"

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = types.ErrNotFound
