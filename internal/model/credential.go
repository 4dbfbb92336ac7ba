package model

// CredentialLists holds the four raw comma-separated inputs of the align step.
// The lists are not validated to have the same length and may contain blank placeholders.
type CredentialLists struct {
	Names     string
	Usernames string
	Passwords string
	URLs      string
}

// AlignedCredentials is the validated record set. All four slices have exactly Count entries.
type AlignedCredentials struct {
	Count     int
	Names     []string
	Usernames []string
	Passwords []string
	URLs      []string
}

// ZeroCredentials is the successful "no records" outcome.
func ZeroCredentials() AlignedCredentials {
	return AlignedCredentials{
		Names:     []string{},
		Usernames: []string{},
		Passwords: []string{},
		URLs:      []string{},
	}
}
