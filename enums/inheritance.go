package enums

type Inheritance string

const (
	InheritanceDirect    Inheritance = "Direct"
	InheritanceInherited Inheritance = "Inherited"
)
