package entities

// UserProfile is the student profile nested under a user record.
// It is replaced wholesale on every save.
type UserProfile struct {
	Personal     PersonalInfo     `json:"personal"`
	Education    EducationInfo    `json:"education"`
	Professional ProfessionalInfo `json:"professional"`
}

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Dob      string `json:"dob"`
	Address  string `json:"address"`
}

type EducationInfo struct {
	HighestDegree string `json:"highestDegree"`
	Institution   string `json:"institution"`
	YearOfPassing string `json:"yearOfPassing"`
	// Skills is a comma-joined list as typed by the student.
	Skills string `json:"skills"`
}

type ProfessionalInfo struct {
	CurrentCompany  string  `json:"currentCompany"`
	CurrentRole     string  `json:"currentRole"`
	ExperienceYears float64 `json:"experienceYears"`
	Linkedin        string  `json:"linkedin"`
}
