package events

// UserCreated is the JSON payload published on the user queue after a
// successful creation. It mirrors the original request fields rather
// than the persisted entity, so it carries no id or timestamps.
type UserCreated struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Birthday string         `json:"birthday"`
	Address  AddressPayload `json:"address"`
}

type AddressPayload struct {
	PostalCode     string `json:"postal_code"`
	Street         string `json:"street"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	State          string `json:"state"`
	AdditionalInfo string `json:"additional_info,omitempty"`
	Number         string `json:"number"`
}
