package model

import "fmt"

// Person identifies one of the four flatmates. The lowercase values are the
// wire format used in JSON bodies and in the database.
type Person string

const (
	PersonJoan  Person = "joan"
	PersonMery  Person = "mery"
	PersonPaco  Person = "paco"
	PersonBelen Person = "belen"
)

// People lists all flatmates in assignment order.
var People = []Person{PersonJoan, PersonMery, PersonPaco, PersonBelen}

func ParsePerson(s string) (Person, error) {
	switch Person(s) {
	case PersonJoan, PersonMery, PersonPaco, PersonBelen:
		return Person(s), nil
	}
	return "", fmt.Errorf("unknown person %q", s)
}

// Area is a cleanable zone of the flat. The two main areas rotate between
// the pairs; each bathroom belongs to exactly one pair.
type Area string

const (
	AreaCocina        Area = "cocina"
	AreaSalonPasillo  Area = "salon_pasillo"
	AreaBanoJoanMery  Area = "bano_joan_mery"
	AreaBanoPacoBelen Area = "bano_paco_belen"
)

func ParseArea(s string) (Area, error) {
	switch Area(s) {
	case AreaCocina, AreaSalonPasillo, AreaBanoJoanMery, AreaBanoPacoBelen:
		return Area(s), nil
	}
	return "", fmt.Errorf("unknown area %q", s)
}

// Bathroom returns the shared bathroom of the pair the person belongs to.
func (p Person) Bathroom() Area {
	switch p {
	case PersonJoan, PersonMery:
		return AreaBanoJoanMery
	default:
		return AreaBanoPacoBelen
	}
}

type TaskType string

const (
	TaskLimpiezaPrincipal TaskType = "limpieza_principal"
	TaskLimpiezaBano      TaskType = "limpieza_bano"
)

func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(s) {
	case TaskLimpiezaPrincipal, TaskLimpiezaBano:
		return TaskType(s), nil
	}
	return "", fmt.Errorf("unknown task type %q", s)
}
