package service

// Column headers of a client export.
const (
	ColFirstName     = "First Name"
	ColMiddleName    = "Middle Name"
	ColLastName      = "Last Name"
	ColSuffix        = "Suffix"
	ColDOB           = "DOB"
	ColSSN           = "SSN"
	ColEthnicity     = "Ethnicity (HUD)"
	ColGender        = "Gender (HUD)"
	ColVeteranStatus = "Veteran Status (HUD)"
	ColRace          = "Race (HUD)"
	ColRelationship  = "Relationship to HoH"
	ColHeadSSN       = "Head of Household's SSN"
	ColProgramName   = "Program Name"
	ColProgramStart  = "Program Start Date"
	ColProgramEnd    = "Program End Date"
	ColDestination   = "Exit Destination"

	ColPhysicalDisability      = "Physical Disability"
	ColDevelopmentalDisability = "Developmental Disability"
	ColChronicHealth           = "Chronic Health Condition"
	ColHIVAIDS                 = "HIV/AIDS"
	ColMentalHealth            = "Mental Health Problem"
	ColSubstanceAbuse          = "Substance Abuse"
	ColDomesticViolence        = "Domestic Violence"

	ColHomelessOneYear  = "Has Been Continuously Homeless (on the streets, in EH or in a Safe Haven) for at Least One Year"
	ColHomelessCount    = "Number of Times the Client has Been Homeless in the Past Three Years (streets, in EH, or in a safe haven)"
	ColPriorResidence   = "Residence Prior to Program Entry - Type of Residence"
	ColLengthAtPrior    = "Residence Prior to Program Entry - Length of Stay in Previous Place"
	ColHomelessMonths   = "Total Number of Months Homeless in the Past Three Years"
	ColHealthInsurance  = "Covered by Health Insurance"
	ColHousingStatus    = "Housing Status"
	ColIncome           = "Income From Any Source"
	ColDomesticOccurred = "When Domestic Violence Occurred"
	ColAnnualDate       = "Annual Assessment Date"
)

// RequiredColumns must all be present in a client export. Other columns are
// optional and read as blank when absent.
var RequiredColumns = []string{
	ColFirstName, ColMiddleName, ColLastName, ColDOB, ColSSN,
	ColEthnicity, ColGender, ColVeteranStatus, ColRace,
	ColRelationship, ColHeadSSN, ColProgramName, ColProgramStart, ColProgramEnd, ColDestination,
	ColPhysicalDisability, ColDevelopmentalDisability, ColChronicHealth, ColHIVAIDS,
	ColMentalHealth, ColSubstanceAbuse, ColDomesticViolence,
	ColHomelessOneYear, ColHomelessCount, ColPriorResidence, ColLengthAtPrior,
}

// ColProjectName is the single column of a project export.
const ColProjectName = "ProjectName"
