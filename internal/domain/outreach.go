package domain

import "time"

// OutreachChannel identifies how a lead was contacted.
type OutreachChannel string

const (
	OutreachChannelEmail OutreachChannel = "email"
	OutreachChannelCall  OutreachChannel = "call"
)

// OutreachStatus is the outcome of handing a message to its backend.
type OutreachStatus string

const (
	OutreachStatusSent    OutreachStatus = "sent"    // accepted by the mailer or queue
	OutreachStatusSkipped OutreachStatus = "skipped" // lead had no contact detail
	OutreachStatusFailed  OutreachStatus = "failed"  // backend returned an error
)

// OutreachEntry is one line of the outreach log.
type OutreachEntry struct {
	ID          string
	LeadID      string
	CompanyName string
	Channel     OutreachChannel
	Status      OutreachStatus
	Detail      string
	CreatedAt   time.Time
}

// OutreachResult counts the outcomes of a bulk action.
type OutreachResult struct {
	Sent    int
	Skipped int
	Failed  int
}

// Total returns the number of leads the action was applied to.
func (r OutreachResult) Total() int {
	return r.Sent + r.Skipped + r.Failed
}
