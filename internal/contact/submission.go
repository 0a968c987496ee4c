// Package contact turns contact-form submissions into outbound email.
package contact

// Submission is the (name, email, message) triple sent by the contact form.
// It is never stored.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Missing returns the names of the empty fields, in form order.
func (s Submission) Missing() []string {
	var missing []string
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Email == "" {
		missing = append(missing, "email")
	}
	if s.Message == "" {
		missing = append(missing, "message")
	}
	return missing
}
