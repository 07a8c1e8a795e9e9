package enums

type Category string

const (
	CategoryStandingGrant    Category = "StandingGrant"
	CategoryEligibleGrant    Category = "EligibleGrant"
	CategoryPolicyAssignment Category = "PolicyAssignment"
)
