package gen

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportSet_TypeString(t *testing.T) {
	self := types.NewPackage("modelkit/examples/account", "account")
	timePkg := types.NewPackage("time", "time")

	entity := types.NewNamed(types.NewTypeName(0, self, "AccountEntity", nil), types.NewStruct(nil, nil), nil)
	stamp := types.NewNamed(types.NewTypeName(0, timePkg, "Time", nil), types.NewStruct(nil, nil), nil)

	s := newImportSet(self.Path())

	assert.Equal(t, "**AccountEntity", s.typeString(types.NewPointer(types.NewPointer(entity))))
	assert.Equal(t, "*time.Time", s.typeString(types.NewPointer(stamp)))
	assert.Equal(t, "*[]string", s.typeString(types.NewPointer(types.NewSlice(types.Typ[types.String]))))
	assert.Equal(t, []importSpec{{Path: "time"}}, s.specs())
}

func TestImportSet_Collision(t *testing.T) {
	s := newImportSet("example/app")

	assert.Equal(t, "model", s.add("modelkit/model", "model"))
	assert.Equal(t, "model2", s.add("other/model", "model"))
	assert.Equal(t, "model", s.add("modelkit/model", "model"))
	assert.Empty(t, s.add("example/app", "app"))

	assert.Equal(t, []importSpec{
		{Path: "modelkit/model"},
		{Alias: "model2", Path: "other/model"},
	}, s.specs())
}
