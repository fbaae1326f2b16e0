package hud

// HUD data-standard enumerations. Labels are the canonical strings written to
// exports; the equivalents table maps historical spellings onto them.

var YesNo = NewTable("yes/no",
	Entry{No, "No"},
	Entry{Yes, "Yes"},
).WithDataQuality()

var NameQuality = NewTable("name quality",
	Entry{1, "Full name reported"},
	Entry{2, "Partial, street name, or code name reported"},
).WithDataQuality()

var SSNQuality = NewTable("SSN quality",
	Entry{1, "Full SSN reported"},
	Entry{2, "Approximate or partial SSN reported"},
).WithDataQuality()

var DOBQuality = NewTable("DOB quality",
	Entry{1, "Full DOB reported"},
	Entry{2, "Approximate or partial DOB reported"},
).WithDataQuality()

var Race = NewTable("race",
	Entry{1, "American Indian or Alaska Native"},
	Entry{2, "Asian"},
	Entry{3, "Black or African American"},
	Entry{4, "Native Hawaiian or Other Pacific Islander"},
	Entry{5, "White"},
).WithDataQuality()

var Ethnicity = NewTable("ethnicity",
	Entry{0, "Non-Hispanic/Non-Latino"},
	Entry{1, "Hispanic/Latino"},
).WithDataQuality()

var Gender = NewTable("gender",
	Entry{0, "Female"},
	Entry{1, "Male"},
	Entry{2, "Transgender male to female"},
	Entry{3, "Transgender female to male"},
	Entry{4, "Other"},
).WithDataQuality()

var HoHRelationship = NewTable("relationship to head of household",
	Entry{Blank, "(Please select a relationship to the head of household)"},
	Entry{RelSelf, "Self (head of household)"},
	Entry{RelChild, "Head of household’s child"},
	Entry{RelSpouse, "Head of household’s spouse or partner"},
	Entry{RelOtherRelation, "Head of household’s other relation member (other relation to head of household)"},
	Entry{RelNonRelation, "Other: non-relation member"},
)

var SubstanceAbuse = NewTable("substance abuse",
	Entry{0, "No"},
	Entry{1, "Alcohol abuse"},
	Entry{2, "Drug abuse"},
	Entry{3, "Both alcohol and drug abuse"},
).WithDataQuality()

var UninsuredReason = NewTable("uninsured reason",
	Entry{1, "Applied; decision pending"},
	Entry{2, "Applied; client not eligible"},
	Entry{3, "Client did not apply"},
	Entry{4, "Insurance type N/A for this client"},
).WithDataQuality()

var Destination = NewTable("destination",
	Entry{24, "Deceased"},
	Entry{1, "Emergency shelter, including hotel or motel paid for with emergency shelter voucher"},
	Entry{15, "Foster care home or foster care group home"},
	Entry{6, "Hospital or other residential non-psychiatric medical facility"},
	Entry{14, "Hotel or motel paid for without emergency shelter voucher"},
	Entry{7, "Jail, prison or juvenile detention facility"},
	Entry{25, "Long-term care facility or nursing home"},
	Entry{26, "Moved from one HOPWA funded project to HOPWA PH"},
	Entry{27, "Moved from one HOPWA funded project to HOPWA TH"},
	Entry{11, "Owned by client, no ongoing housing subsidy"},
	Entry{21, "Owned by client, with ongoing housing subsidy"},
	Entry{3, "Permanent housing for formerly homeless persons (such as: CoC project; or HUD legacy programs; or HOPWA PH)"},
	Entry{16, "Place not meant for habitation (e.g., a vehicle, an abandoned building, bus/train/subway station/airport or anywhere outside)"},
	Entry{4, "Psychiatric hospital or other psychiatric facility"},
	Entry{10, "Rental by client, no ongoing housing subsidy"},
	Entry{19, "Rental by client, with VASH housing subsidy"},
	Entry{28, "Rental by client, with GPD TIP housing subsidy"},
	Entry{20, "Rental by client, with other ongoing housing subsidy"},
	Entry{29, "Residential project or halfway house with no homeless criteria"},
	Entry{18, "Safe Haven"},
	Entry{22, "Staying or living with family, permanent tenure"},
	Entry{12, "Staying or living with family, temporary tenure (e.g., room, apartment or house)"},
	Entry{23, "Staying or living with friends, permanent tenure"},
	Entry{13, "Staying or living with friends, temporary tenure (e.g., room apartment or house)"},
	Entry{5, "Substance abuse treatment facility or detox center"},
	Entry{2, "Transitional housing for homeless persons (including homeless youth)"},
	Entry{17, "Other"},
	Entry{30, "No exit interview completed"},
).WithDataQuality()

// Prior-residence codes that count as literally homeless.
const (
	PriorEmergencyShelter Code = 1
	PriorNotForHabitation Code = 16
	PriorSafeHaven        Code = 18
)

var PriorResidence = NewTable("prior residence",
	Entry{PriorEmergencyShelter, "Emergency shelter, including hotel or motel paid for with emergency shelter voucher"},
	Entry{15, "Foster care home or foster care group home"},
	Entry{6, "Hospital or other residential non-psychiatric medical facility"},
	Entry{14, "Hotel or motel paid for without emergency shelter voucher"},
	Entry{7, "Jail, prison or juvenile detention facility"},
	Entry{24, "Long-term care facility or nursing home"},
	Entry{23, "Owned by client, no ongoing housing subsidy"},
	Entry{21, "Owned by client, with ongoing housing subsidy"},
	Entry{3, "Permanent housing for formerly homeless persons (such as: a CoC project; HUD legacy programs; or HOPWA PH)"},
	Entry{PriorNotForHabitation, "Place not meant for habitation (e.g., a vehicle, an abandoned building, bus/train/subway station/airport or anywhere outside)"},
	Entry{4, "Psychiatric hospital or other psychiatric facility"},
	Entry{22, "Rental by client, no ongoing housing subsidy"},
	Entry{19, "Rental by client, with VASH subsidy"},
	Entry{25, "Rental by client, with GPD TIP subsidy"},
	Entry{20, "Rental by client, with other ongoing housing subsidy"},
	Entry{26, "Residential project or halfway house with no homeless criteria"},
	Entry{PriorSafeHaven, "Safe Haven"},
	Entry{12, "Staying or living in a family member’s room, apartment or house"},
	Entry{13, "Staying or living in a friend’s room, apartment or house"},
	Entry{5, "Substance abuse treatment facility or detox center"},
	Entry{2, "Transitional housing for homeless persons (including homeless youth)"},
	Entry{17, "Other"},
).WithDataQuality()

// IsLiterallyHomeless reports whether a prior-residence code is the street,
// an emergency shelter, or a safe haven.
func IsLiterallyHomeless(prior Code) bool {
	return prior == PriorEmergencyShelter || prior == PriorNotForHabitation || prior == PriorSafeHaven
}

var LengthAtPriorResidence = NewTable("length at prior residence",
	Entry{10, "One day or less"},
	Entry{11, "Two days to one week"},
	Entry{2, "More than one week, but less than one month"},
	Entry{3, "One to three months"},
	Entry{4, "More than three months, but less than one year"},
	Entry{5, "One year or longer"},
).WithDataQuality()

var HomelessCount = NewTable("times homeless in three years",
	Entry{0, "Never in 3 years"},
	Entry{1, "One time"},
	Entry{2, "Two times"},
	Entry{3, "Three times"},
	Entry{4, "Four or more times"},
).WithDataQuality()

// Months-homeless codes. Legacy exports used 100 for "zero months" and 7 for
// "more than twelve"; both are remapped on load.
const (
	MonthsOne          Code = 101
	MonthsMoreThan12   Code = 113
	legacyMonthsZero   Code = 100
	legacyMonthsOver12 Code = 7
)

var HomelessMonths = NewTable("months homeless in three years",
	Entry{MonthsOne, "One Month"},
	Entry{102, "2"},
	Entry{103, "3"},
	Entry{104, "4"},
	Entry{105, "5"},
	Entry{106, "6"},
	Entry{107, "7"},
	Entry{108, "8"},
	Entry{109, "9"},
	Entry{110, "10"},
	Entry{111, "11"},
	Entry{112, "12"},
	Entry{MonthsMoreThan12, "More than 12 months"},
).WithDataQuality()

// RemapLegacyMonths converts months-homeless codes from the older data
// standard to the current one.
func RemapLegacyMonths(c Code) Code {
	switch c {
	case legacyMonthsZero:
		return MonthsOne
	case legacyMonthsOver12:
		return MonthsMoreThan12
	default:
		return c
	}
}

var HousingStatus = NewTable("housing status",
	Entry{1, "Category 1 - Homeless"},
	Entry{2, "Category 2 - At imminent risk of losing housing"},
	Entry{5, "Category 3 - Homeless only under other federal statutes"},
	Entry{6, "Category 4 - Fleeing domestic violence"},
	Entry{3, "At-risk of homelessness"},
	Entry{4, "Stably Housed"},
).WithDataQuality()

var DomesticViolenceOccurred = NewTable("domestic violence occurred",
	Entry{1, "Within the past three months"},
	Entry{2, "Three to six months ago (excluding six months exactly)"},
	Entry{3, "Six months to one year ago (excluding one year exactly)"},
	Entry{4, "One year ago or more"},
).WithDataQuality()

var ProjectType = NewTable("project type",
	Entry{1, "Emergency Shelter"},
	Entry{2, "Transitional Housing"},
	Entry{3, "PH - Permanent Supportive Housing (disability required for entry)"},
	Entry{4, "Street Outreach"},
	Entry{5, "RETIRED"},
	Entry{6, "Services Only"},
	Entry{7, "Other"},
	Entry{8, "Safe Haven"},
	Entry{9, "PH – Housing Only"},
	Entry{10, "PH – Housing with Services (no disability required for entry)"},
	Entry{11, "Day Shelter"},
	Entry{12, "Homelessness Prevention"},
	Entry{13, "PH - Rapid Re-Housing"},
	Entry{14, "Coordinated Assessment"},
)

var TrackingMethod = NewTable("tracking method",
	Entry{0, "Entry/Exit Date"},
	Entry{3, "Night-by-Night"},
)

var FundingProgram = NewTable("funding program",
	Entry{1, "HUD:CoC – Homelessness Prevention (High Performing Comm. Only)"},
	Entry{2, "HUD:CoC – Permanent Supportive Housing"},
	Entry{3, "HUD:CoC – Rapid Re-Housing"},
	Entry{4, "HUD:CoC – Supportive Services Only"},
	Entry{5, "HUD:CoC – Transitional Housing"},
	Entry{6, "HUD:CoC – Safe Haven"},
	Entry{7, "HUD:CoC – Single Room Occupancy (SRO)"},
	Entry{8, "HUD:ESG – Emergency Shelter (operating and/or essential services)"},
	Entry{9, "HUD:ESG – Homelessness Prevention"},
	Entry{10, "HUD:ESG – Rapid Rehousing"},
	Entry{11, "HUD:ESG – Street Outreach"},
	Entry{12, "HUD:Rural Housing Stability Assistance Program"},
	Entry{13, "HUD:HOPWA – Hotel/Motel Vouchers"},
	Entry{14, "HUD:HOPWA – Housing Information"},
	Entry{15, "HUD:HOPWA – Permanent Housing (facility based or TBRA)"},
	Entry{16, "HUD:HOPWA – Permanent Housing Placement"},
	Entry{17, "HUD:HOPWA – Short-Term Rent, Mortgage, Utility assistance"},
	Entry{18, "HUD:HOPWA – Short-Term Supportive Facility"},
	Entry{19, "HUD:HOPWA – Transitional Housing (facility based or TBRA)"},
	Entry{20, "HUD:HUD/VASH"},
	Entry{21, "HHS:PATH – Street Outreach & Supportive Services Only"},
	Entry{22, "HHS:RHY – Basic Center Program (prevention and shelter)"},
	Entry{23, "HHS:RHY – Maternity Group Home for Pregnant and Parenting Youth"},
	Entry{24, "HHS:RHY – Transitional Living Program"},
	Entry{25, "HHS:RHY – Street Outreach Project"},
	Entry{26, "HHS:RHY – Demonstration Project**"},
	Entry{27, "VA: Community Contract Emergency Housing"},
	Entry{28, "VA: Community Contract Residential Treatment Program***"},
	Entry{29, "VA:Domiciliary Care***"},
	Entry{30, "VA:Community Contract Safe Haven Program***"},
	Entry{31, "VA:Grant and Per Diem Program"},
	Entry{32, "VA:Compensated Work Therapy Transitional Residence***"},
	Entry{33, "VA:Supportive Services for Veteran Families"},
	Entry{34, "N/A"},
)

// AllTables lists every enumeration, for exports and round-trip checks.
var AllTables = []*Table{
	YesNo, NameQuality, SSNQuality, DOBQuality, Race, Ethnicity, Gender,
	HoHRelationship, SubstanceAbuse, UninsuredReason, Destination, PriorResidence,
	LengthAtPriorResidence, HomelessCount, HomelessMonths, HousingStatus,
	DomesticViolenceOccurred, ProjectType, TrackingMethod, FundingProgram,
}
