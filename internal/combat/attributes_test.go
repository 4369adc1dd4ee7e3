package combat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicky is an adapter that blows up on every access.
type panicky struct{}

func (panicky) Attr(string) (any, bool) { panic("boom") }
func (panicky) SetAttr(string, any) error { panic("boom") }

// readOnly rejects every write.
type readOnly struct{ Attributes }

func (readOnly) SetAttr(string, any) error { return errors.New("read only") }

func TestGetInt_CandidateOrder(t *testing.T) {
	p := Attributes{"Power": 7, "Str": 3}
	assert.Equal(t, 7, GetInt(p, attackNames...), "first resolvable candidate wins")

	p["Attack"] = 11
	assert.Equal(t, 11, GetInt(p, attackNames...))
}

func TestGetInt_Coercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 5, 5},
		{"int32", int32(6), 6},
		{"int64", int64(7), 7},
		{"float truncates", 8.9, 8},
		{"numeric string", "12", 12},
		{"bool", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetInt(Attributes{"Attack": tt.value}, "Attack"))
		})
	}
}

func TestGetInt_FallsThroughBadValues(t *testing.T) {
	p := Attributes{"Attack": "sharp", "Power": nil, "Str": 4}
	assert.Equal(t, 4, GetInt(p, attackNames...))
}

func TestGetInt_FailuresYieldZero(t *testing.T) {
	assert.Equal(t, 0, GetInt(Attributes{}, "Attack"))
	assert.Equal(t, 0, GetInt(Attributes{"Attack": []int{1}}, "Attack"))
	assert.Equal(t, 0, GetInt(nil, "Attack"))
	assert.Equal(t, 0, GetInt(panicky{}, "Attack"))
}

func TestGetString(t *testing.T) {
	assert.Equal(t, "Rat", GetString(Attributes{"Name": "Rat"}, nameNames...))
	assert.Equal(t, "Rat B", GetString(Attributes{"Name": "", "Label": "Rat B"}, nameNames...))
	assert.Equal(t, "42", GetString(Attributes{"Name": 42}, nameNames...))
	assert.Equal(t, "", GetString(Attributes{}, nameNames...))
	assert.Equal(t, "", GetString(panicky{}, nameNames...))
}

func TestSetInt_SwallowsFailures(t *testing.T) {
	p := Attributes{}
	SetInt(p, AttrSpeed, 40)
	assert.Equal(t, 40, p[AttrSpeed])

	require.NotPanics(t, func() {
		SetInt(nil, AttrSpeed, 1)
		SetInt(panicky{}, AttrSpeed, 1)
		SetInt(readOnly{Attributes{}}, AttrSpeed, 1)
		var nilMap Attributes
		SetInt(nilMap, AttrSpeed, 1)
	})
}

func TestDisplayNameFallback(t *testing.T) {
	names := attrNames{}
	assert.Equal(t, "Slime", names.DisplayName(Attributes{"Name": "Slime"}))
	assert.Equal(t, UnknownName, names.DisplayName(Attributes{}))
	assert.Equal(t, UnknownName, names.DisplayName(nil))
}
