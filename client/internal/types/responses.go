package types

// ------------------------------
// Response Types
// ------------------------------

// Dictionaries is the creation context returned by GET tender/create.
type Dictionaries struct {
	Corporates  []Corporate  `json:"Corporates"`
	Contractors []Contractor `json:"Contractors,omitempty"`
}

// FirstCustomer returns the first corporate and its first contact person.
// ok is false when either list is empty or an identifier is blank.
func (d *Dictionaries) FirstCustomer() (Customer, bool) {
	if d == nil || len(d.Corporates) == 0 {
		return Customer{}, false
	}
	corp := d.Corporates[0]
	if corp.ID == "" || len(corp.ContactPersons) == 0 || corp.ContactPersons[0].ID == "" {
		return Customer{}, false
	}
	return Customer{CompanyID: corp.ID, ContactID: corp.ContactPersons[0].ID}, true
}

// FirstContractor returns the first contractor with a non-empty identifier.
func (d *Dictionaries) FirstContractor() (Contractor, bool) {
	if d == nil || len(d.Contractors) == 0 || d.Contractors[0].ID == "" {
		return Contractor{}, false
	}
	return d.Contractors[0], true
}
