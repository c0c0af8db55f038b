package tui

import (
	"time"

	"github.com/matheuskafuri/hotwatch/internal/board"
)

// viewLoadedMsg carries the seq of the load that produced it; only the most
// recently issued load is applied.
type viewLoadedMsg struct {
	seq  uint64
	view board.View
	err  error
}

// ttlTickMsg fires once per cache ttl so an idle board stays current.
type ttlTickMsg time.Time

type exportDoneMsg struct {
	path string
	err  error
}

type openErrMsg struct {
	err error
}
