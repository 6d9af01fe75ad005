package model

// Contact is the data structure for a person that we know, as it is stored in the contacts table
// and returned by the REST API. The Id is assigned by the database and never changes.
type Contact struct {
	Id        int64   `json:"id"         db:"id"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name"  db:"last_name"`
	Email     string  `json:"email"      db:"email"`
	Phone     string  `json:"phone"      db:"phone"`
	Birthday  Date    `json:"birthday"   db:"birthday"`
	Other     *string `json:"other"      db:"other"`
}

// ContactPayload is the request body for creating and updating a contact. An update replaces all
// fields, so every field except Other is required.
type ContactPayload struct {
	FirstName string  `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string  `json:"last_name"  binding:"required,min=2,max=50"`
	Email     string  `json:"email"      binding:"required,email,max=150"`
	Phone     string  `json:"phone"      binding:"required,min=9,max=17"`
	Birthday  Date    `json:"birthday"   binding:"required,past"`
	Other     *string `json:"other"`
}

// ToContact combines the payload with an id.
func (p ContactPayload) ToContact(id int64) Contact {
	return Contact{
		Id:        id,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Birthday:  p.Birthday,
		Other:     p.Other,
	}
}
