package domain

// Contractor is a contractor directory entry. The core only reads it.
type Contractor struct {
	ID          string
	Name        string
	Avatar      string
	Phone       string
	Email       string
	Rating      float64
	Specialties []string
	IsActive    bool
}

// Snapshot copies the fields kept on an assigned request.
func (c Contractor) Snapshot() ContractorSnapshot {
	return ContractorSnapshot{
		ID:     c.ID,
		Name:   c.Name,
		Avatar: c.Avatar,
		Rating: c.Rating,
	}
}
