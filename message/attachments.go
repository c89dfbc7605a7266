package message

// Attachments is the ordered set of attachments of a message, keyed by id.
type Attachments struct {
	list []*Attachment
	byID map[string]int
}

func newAttachments() *Attachments {
	return &Attachments{byID: map[string]int{}}
}

// add appends a, replacing any earlier attachment with the same id in place.
func (as *Attachments) add(a *Attachment) {
	if i, ok := as.byID[a.id]; ok {
		as.list[i] = a
		return
	}
	as.byID[a.id] = len(as.list)
	as.list = append(as.list, a)
}

// Len returns the number of attachments.
func (as *Attachments) Len() int {
	if as == nil {
		return 0
	}
	return len(as.list)
}

// All returns the attachments in message order.
func (as *Attachments) All() []*Attachment {
	if as == nil {
		return nil
	}
	return append([]*Attachment(nil), as.list...)
}

// Get returns the attachment with the given id.
func (as *Attachments) Get(id string) (*Attachment, bool) {
	if as == nil {
		return nil, false
	}
	i, ok := as.byID[id]
	if !ok {
		return nil, false
	}
	return as.list[i], true
}

// First returns the first attachment or nil.
func (as *Attachments) First() *Attachment {
	if as.Len() == 0 {
		return nil
	}
	return as.list[0]
}

// IDs returns the attachment ids in message order.
func (as *Attachments) IDs() []string {
	ids := make([]string, 0, as.Len())
	for _, a := range as.All() {
		ids = append(ids, a.id)
	}
	return ids
}
