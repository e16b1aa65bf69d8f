package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    Type
		wantErr bool
	}{
		{"Nil", NIL, false},
		{"Boolean", BOOLEAN, false},
		{"Integer", INTEGER, false},
		{"Decimal", DECIMAL, false},
		{"Character", CHARACTER, false},
		{"String", STRING, false},
		{"Any", ANY, false},
		{"Comparable", COMPARABLE, false},
		{"integer", ANY, true},
		{"Object", ANY, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())
		})
	}
}

func TestIsAssignable(t *testing.T) {
	tests := []struct {
		name   string
		target Type
		actual Type
		want   bool
	}{
		{"identical", INTEGER, INTEGER, true},
		{"any target", ANY, STRING, true},
		{"any target nil", ANY, NIL, true},
		{"any actual is not assignable to concrete", INTEGER, ANY, false},
		{"comparable integer", COMPARABLE, INTEGER, true},
		{"comparable decimal", COMPARABLE, DECIMAL, true},
		{"comparable character", COMPARABLE, CHARACTER, true},
		{"comparable string", COMPARABLE, STRING, true},
		{"comparable boolean", COMPARABLE, BOOLEAN, false},
		{"comparable nil", COMPARABLE, NIL, false},
		{"comparable as actual", INTEGER, COMPARABLE, false},
		{"integer into decimal", DECIMAL, INTEGER, false},
		{"string into integer", INTEGER, STRING, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAssignable(tt.target, tt.actual))
			err := RequireAssignable(tt.target, tt.actual)
			if tt.want {
				assert.NoError(t, err)
				return
			}
			var notAssignable *NotAssignableError
			require.True(t, errors.As(err, &notAssignable))
			assert.Equal(t, tt.target, notAssignable.Target)
		})
	}
}

func TestIsConcrete(t *testing.T) {
	assert.True(t, INTEGER.IsConcrete())
	assert.True(t, NIL.IsConcrete())
	assert.False(t, ANY.IsConcrete())
	assert.False(t, COMPARABLE.IsConcrete())
}
