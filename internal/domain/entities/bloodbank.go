package entities

// BloodBank is a lookup-only listing of a blood bank and its stock
type BloodBank struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Address     string   `json:"address" db:"address"`
	Phone       string   `json:"phone" db:"phone"`
	BloodGroups []string `json:"blood_groups"`
}
