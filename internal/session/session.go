// Package session identifies the conversation a status report is
// generated for.
package session

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// Environment variables consulted before minting a fresh id.
const (
	EnvSessionID       = "SLIMSTATUS_SESSION_ID"
	EnvParentSessionID = "SLIMSTATUS_PARENT_SESSION_ID"
)

// Info describes the current session.
type Info struct {
	ID        string
	ParentID  string
	Generated bool // the id was minted here, not supplied by the environment
}

// Current resolves the session from the environment, generating a new
// id when none is provided.
func Current() Info {
	info := Info{
		ID:       strings.TrimSpace(os.Getenv(EnvSessionID)),
		ParentID: strings.TrimSpace(os.Getenv(EnvParentSessionID)),
	}
	if info.ID == "" {
		info.ID = uuid.NewString()
		info.Generated = true
	}
	return info
}

// IsSub reports whether this session runs under a parent session.
func (i Info) IsSub() bool {
	return i.ParentID != ""
}
