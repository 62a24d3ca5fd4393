package model_test

import (
	"modelkit/examples/account"
	"modelkit/model"
)

// person is a hand-described model used across the package tests.
type person struct {
	Name   *string
	Age    *int64
	Active *bool
	Tags   []string
	Scores map[string]int
	Friend *person
	Extra  any
}

var personSchema = model.MustRegister(model.Descriptor{
	Name: "model_test.person",
	New:  func() model.Model { return new(person) },
	Fields: []model.Field{
		model.Optional("name", model.KindString, func(m *person) **string { return &m.Name }),
		model.Optional("age", model.KindNumber, func(m *person) **int64 { return &m.Age }),
		model.Optional("active", model.KindBool, func(m *person) **bool { return &m.Active }),
		model.List("tags", func(m *person) *[]string { return &m.Tags }),
		model.Dict("scores", func(m *person) *map[string]int { return &m.Scores }),
		model.Nested("friend", func(m *person) **person { return &m.Friend }),
		model.Any("extra", func(m *person) *any { return &m.Extra }),
	},
})

func (*person) Schema() *model.Schema { return personSchema }

// employee extends person with snake_case keys and a required id.
type employee struct {
	model.Base
	person

	EmployeeID string
	Notes      *string
	Archived   bool
}

var employeeSchema = model.MustRegister(model.Descriptor{
	Name:   "model_test.employee",
	New:    func() model.Model { return new(employee) },
	Parent: personSchema,
	Base:   func(m model.Model) model.Model { return &m.(*employee).person },
	Fields: []model.Field{
		model.Value("employeeId", model.KindString, func(m *employee) *string { return &m.EmployeeID }),
		model.Optional("notes", model.KindString, func(m *employee) **string { return &m.Notes }),
	},
	Convention: model.ConventionSnakeCase,
	Keys:       map[string]string{"name": "full_name"},
	Ignore:     []string{"notes"},
	Required:   []string{"employeeId"},
})

func (*employee) Schema() *model.Schema { return employeeSchema }

// Ignored skips archived employees as merge sources.
func (e *employee) Ignored() bool { return e.Archived }

// gadget is unrelated to person.
type gadget struct {
	Name *string
}

var gadgetSchema = model.MustRegister(model.Descriptor{
	Name: "model_test.gadget",
	New:  func() model.Model { return new(gadget) },
	Fields: []model.Field{
		model.Optional("name", model.KindString, func(m *gadget) **string { return &m.Name }),
	},
})

func (*gadget) Schema() *model.Schema { return gadgetSchema }

// crew holds models in a list, a map and behind optional pointers.
type crew struct {
	Members []*person
	Roster  map[string]*person
	Lead    *person
	Owner   *account.AccountEntity
}

var crewSchema = model.MustRegister(model.Descriptor{
	Name: "model_test.crew",
	New:  func() model.Model { return new(crew) },
	Fields: []model.Field{
		model.List("members", func(m *crew) *[]*person { return &m.Members }),
		model.Dict("roster", func(m *crew) *map[string]*person { return &m.Roster }),
		model.Optional("lead", model.KindAny, func(m *crew) **person { return &m.Lead }),
		model.Optional("owner", model.KindAny, func(m *crew) **account.AccountEntity { return &m.Owner }),
	},
})

func (*crew) Schema() *model.Schema { return crewSchema }

func ptr[T any](v T) *T { return &v }
