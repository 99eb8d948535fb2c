package domain

// Store is a customer location that places orders and receives visits.
type Store struct {
	ID        string
	Name      string
	Address   string
	Location  Coordinate
	Region    string
	Owner     string
	Phone     string
	IsPartner bool
}
