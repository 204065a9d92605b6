package domain

// FieldDefinition describes one profile attribute that can be required or scored.
type FieldDefinition struct {
	Key         string
	Category    FieldCategory
	DataType    DataType
	Label       string
	Description string
}

// fieldCatalog is ordered the way the profile editor renders it; the index is the seed displayOrder.
var fieldCatalog = []FieldDefinition{
	{Key: "firstName", Category: CategoryBasic, DataType: DataTypeText, Label: "First name"},
	{Key: "lastName", Category: CategoryBasic, DataType: DataTypeText, Label: "Last name"},
	{Key: "email", Category: CategoryBasic, DataType: DataTypeText, Label: "Email"},
	{Key: "phone", Category: CategoryBasic, DataType: DataTypeText, Label: "Phone"},
	{Key: "location", Category: CategoryBasic, DataType: DataTypeText, Label: "Location"},
	{Key: "headline", Category: CategoryBasic, DataType: DataTypeText, Label: "Headline"},
	{Key: "summary", Category: CategoryBasic, DataType: DataTypeText, Label: "Summary"},
	{Key: "yearsOfExperience", Category: CategoryBasic, DataType: DataTypeNumber, Label: "Years of experience", Description: "Self-declared total years of professional experience"},
	{Key: "linkedinUrl", Category: CategorySocial, DataType: DataTypeText, Label: "LinkedIn"},
	{Key: "githubUrl", Category: CategorySocial, DataType: DataTypeText, Label: "GitHub"},
	{Key: "portfolioUrl", Category: CategorySocial, DataType: DataTypeText, Label: "Portfolio"},
	{Key: "skills", Category: CategorySkills, DataType: DataTypeList, Label: "Skills", Description: "Skill entries; matched by skill name"},
	{Key: "skillLevel", Category: CategorySkills, DataType: DataTypeEnum, Label: "Skill proficiency", Description: "Proficiency levels across skill entries"},
	{Key: "skillYears", Category: CategorySkills, DataType: DataTypeNumber, Label: "Skill years", Description: "Longest years of use of any single skill"},
	{Key: "education", Category: CategoryEducation, DataType: DataTypeList, Label: "Education", Description: "Education entries; matched by degree"},
	{Key: "educationDegree", Category: CategoryEducation, DataType: DataTypeEnum, Label: "Degree"},
	{Key: "educationInstitution", Category: CategoryEducation, DataType: DataTypeEnum, Label: "Institution"},
	{Key: "experience", Category: CategoryExperience, DataType: DataTypeList, Label: "Experience", Description: "Experience entries; matched by title"},
	{Key: "experienceTitle", Category: CategoryExperience, DataType: DataTypeEnum, Label: "Job title"},
	{Key: "experienceTenure", Category: CategoryExperience, DataType: DataTypeDuration, Label: "Tenure", Description: "Calendar years covered by experience entries, overlaps merged"},
	{Key: "resume", Category: CategoryResume, DataType: DataTypeDocument, Label: "Resume"},
	{Key: "compliance", Category: CategoryCompliance, DataType: DataTypeCompliance, Label: "Compliance documents", Description: "Clearances and compliance records that are not expired"},
	{Key: "complianceType", Category: CategoryCompliance, DataType: DataTypeEnum, Label: "Clearance type", Description: "Types of non-expired compliance records"},
}

var catalogIndex = func() map[string]FieldDefinition {
	m := make(map[string]FieldDefinition, len(fieldCatalog))
	for _, f := range fieldCatalog {
		m[f.Key] = f
	}
	return m
}()

// defaultRequired are required out of the box when settings are seeded.
var defaultRequired = map[string]bool{"firstName": true, "lastName": true, "email": true, "resume": true}

// FieldCatalog returns a copy of every catalog entry in display order.
func FieldCatalog() []FieldDefinition {
	out := make([]FieldDefinition, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// LookupField finds a catalog entry by key.
func LookupField(key string) (FieldDefinition, bool) {
	f, ok := catalogIndex[key]
	return f, ok
}

// DefaultFieldSettings builds one seed setting per catalog entry.
func DefaultFieldSettings() []ProfileFieldSetting {
	out := make([]ProfileFieldSetting, 0, len(fieldCatalog))
	for i, f := range fieldCatalog {
		s := ProfileFieldSetting{
			ID:           "pfs-" + f.Key,
			FieldName:    f.Key,
			Category:     f.Category,
			Label:        f.Label,
			Description:  f.Description,
			DisplayOrder: i + 1,
		}
		s.Apply(true, defaultRequired[f.Key])
		out = append(out, s)
	}
	return out
}
