package session

import (
	"github.com/rs/xid"

	"github.com/nickrallison/svql-go/netlist"
	"github.com/nickrallison/svql-go/search"
)

// Task names one needle/haystack search to run as part of a batch.
type Task struct {
	Label    string
	Needle   *netlist.Design
	Haystack *netlist.Design
	Config   search.Config
}

// Result is one Task's outcome, stamped with an xid so log lines from
// concurrent tasks can be correlated back to the task that produced them.
type Result struct {
	ID      xid.ID
	Label   string
	Matches []search.Embedding
	Err     error
}
